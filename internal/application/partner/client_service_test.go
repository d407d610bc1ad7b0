package partner

import (
	"context"
	"testing"

	"github.com/billfold/backend/internal/domain/partner"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByStatus(ctx context.Context, accountID uuid.UUID, status partner.ClientStatus, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, accountID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) SaveWithLock(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	args := m.Called(ctx, accountID, id)
	return args.Error(0)
}

func (m *MockClientRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockReferenceChecker is a mock implementation of ReferenceChecker
type MockReferenceChecker struct {
	mock.Mock
}

func (m *MockReferenceChecker) HasReferences(ctx context.Context, accountID, clientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID, clientID)
	return args.Bool(0), args.Error(1)
}

var (
	testAccountID = uuid.New()
	testClientID  = uuid.New()
)

func createTestClient() *partner.Client {
	client, _ := partner.NewClient(testAccountID, "Acme Corp", "billing@acme.test", "555-0100", "1 Main St")
	client.ID = testClientID
	client.ClearDomainEvents()
	return client
}

func TestClientService_Create(t *testing.T) {
	t.Run("create client successfully", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo, new(MockReferenceChecker))
		ctx := context.Background()

		repo.On("Save", ctx, mock.AnythingOfType("*partner.Client")).Return(nil)

		result, err := service.Create(ctx, testAccountID, CreateClientRequest{
			Name:  "Acme Corp",
			Email: "billing@acme.test",
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "Acme Corp", result.Name)
		assert.Equal(t, "active", result.Status)
		repo.AssertExpectations(t)
	})

	t.Run("fail on empty name", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo, new(MockReferenceChecker))
		ctx := context.Background()

		result, err := service.Create(ctx, testAccountID, CreateClientRequest{Name: "   "})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fail on malformed email", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo, new(MockReferenceChecker))
		ctx := context.Background()

		result, err := service.Create(ctx, testAccountID, CreateClientRequest{
			Name:  "Acme Corp",
			Email: "not-an-email",
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestClientService_Deactivate(t *testing.T) {
	t.Run("deactivate client", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo, new(MockReferenceChecker))
		ctx := context.Background()

		client := createTestClient()
		repo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(client, nil)
		repo.On("SaveWithLock", ctx, client).Return(nil)

		result, err := service.Deactivate(ctx, testAccountID, testClientID)

		assert.NoError(t, err)
		assert.Equal(t, "inactive", result.Status)
		repo.AssertExpectations(t)
	})
}

func TestClientService_Delete(t *testing.T) {
	t.Run("delete unreferenced client", func(t *testing.T) {
		repo := new(MockClientRepository)
		references := new(MockReferenceChecker)
		service := NewClientService(repo, references)
		ctx := context.Background()

		client := createTestClient()
		repo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(client, nil)
		references.On("HasReferences", ctx, testAccountID, testClientID).Return(false, nil)
		repo.On("DeleteForAccount", ctx, testAccountID, testClientID).Return(nil)

		err := service.Delete(ctx, testAccountID, testClientID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("referenced client cannot be deleted", func(t *testing.T) {
		repo := new(MockClientRepository)
		references := new(MockReferenceChecker)
		service := NewClientService(repo, references)
		ctx := context.Background()

		client := createTestClient()
		repo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(client, nil)
		references.On("HasReferences", ctx, testAccountID, testClientID).Return(true, nil)

		err := service.Delete(ctx, testAccountID, testClientID)

		assert.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
		repo.AssertNotCalled(t, "DeleteForAccount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fail when client not found", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo, new(MockReferenceChecker))
		ctx := context.Background()

		repo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, testAccountID, testClientID)

		assert.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeNotFound))
	})
}

func TestClientService_Update(t *testing.T) {
	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		repo := new(MockClientRepository)
		service := NewClientService(repo, new(MockReferenceChecker))
		ctx := context.Background()

		client := createTestClient()
		repo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(client, nil)
		repo.On("SaveWithLock", ctx, client).Return(nil)

		phone := "555-0199"
		result, err := service.Update(ctx, testAccountID, testClientID, UpdateClientRequest{Phone: &phone})

		assert.NoError(t, err)
		assert.Equal(t, "555-0199", result.Phone)
		assert.Equal(t, "Acme Corp", result.Name)
		assert.Equal(t, "billing@acme.test", result.Email)
	})
}
