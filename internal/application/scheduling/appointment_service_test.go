package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/billfold/backend/internal/domain/partner"
	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*scheduling.Appointment, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]scheduling.Appointment, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Save(ctx context.Context, appointment *scheduling.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) SaveWithLock(ctx context.Context, appointment *scheduling.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	args := m.Called(ctx, accountID, id)
	return args.Error(0)
}

func (m *MockAppointmentRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID, clientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
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

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notification scheduling.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

var (
	testAccountID     = uuid.New()
	testClientID      = uuid.New()
	testAppointmentID = uuid.New()
)

func createTestClient() *partner.Client {
	client, _ := partner.NewClient(testAccountID, "Acme Corp", "billing@acme.test", "", "")
	client.ID = testClientID
	client.ClearDomainEvents()
	return client
}

func createTestAppointment() *scheduling.Appointment {
	appointment, _ := scheduling.NewAppointment(testAccountID, testClientID, "Kickoff call", "", time.Now().Add(48*time.Hour), 45)
	appointment.ID = testAppointmentID
	appointment.ClearDomainEvents()
	return appointment
}

func TestAppointmentService_Create(t *testing.T) {
	t.Run("create appointment and notify the client", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		clientRepo := new(MockClientRepository)
		notifier := new(MockNotifier)
		service := NewAppointmentService(repo, clientRepo, notifier, zap.NewNop())
		ctx := context.Background()

		clientRepo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(createTestClient(), nil)
		repo.On("Save", ctx, mock.AnythingOfType("*scheduling.Appointment")).Return(nil)
		notifier.On("Notify", ctx, mock.AnythingOfType("scheduling.Notification")).Return(nil)

		result, err := service.Create(ctx, testAccountID, CreateAppointmentRequest{
			ClientID:        testClientID,
			Title:           "Kickoff call",
			AppointmentDate: time.Now().Add(48 * time.Hour),
			DurationMinutes: 45,
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "scheduled", result.Status)
		assert.Empty(t, result.Warning)
		notifier.AssertExpectations(t)
	})

	t.Run("notification failure is a warning, not an error", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		clientRepo := new(MockClientRepository)
		notifier := new(MockNotifier)
		service := NewAppointmentService(repo, clientRepo, notifier, zap.NewNop())
		ctx := context.Background()

		clientRepo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(createTestClient(), nil)
		repo.On("Save", ctx, mock.AnythingOfType("*scheduling.Appointment")).Return(nil)
		notifier.On("Notify", ctx, mock.AnythingOfType("scheduling.Notification")).Return(errors.New("webhook timeout"))

		result, err := service.Create(ctx, testAccountID, CreateAppointmentRequest{
			ClientID:        testClientID,
			Title:           "Kickoff call",
			AppointmentDate: time.Now().Add(48 * time.Hour),
			DurationMinutes: 45,
		})

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.NotEmpty(t, result.Warning)
		repo.AssertExpectations(t)
	})

	t.Run("fail when client does not exist", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		clientRepo := new(MockClientRepository)
		service := NewAppointmentService(repo, clientRepo, new(MockNotifier), zap.NewNop())
		ctx := context.Background()

		clientRepo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(nil, shared.ErrNotFound)

		result, err := service.Create(ctx, testAccountID, CreateAppointmentRequest{
			ClientID:        testClientID,
			Title:           "Kickoff call",
			AppointmentDate: time.Now().Add(48 * time.Hour),
			DurationMinutes: 45,
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fail on non-positive duration", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		clientRepo := new(MockClientRepository)
		service := NewAppointmentService(repo, clientRepo, new(MockNotifier), zap.NewNop())
		ctx := context.Background()

		clientRepo.On("FindByIDForAccount", ctx, testAccountID, testClientID).Return(createTestClient(), nil)

		result, err := service.Create(ctx, testAccountID, CreateAppointmentRequest{
			ClientID:        testClientID,
			Title:           "Kickoff call",
			AppointmentDate: time.Now().Add(48 * time.Hour),
			DurationMinutes: 0,
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	t.Run("appointments move freely between statuses", func(t *testing.T) {
		for _, target := range []scheduling.AppointmentStatus{
			scheduling.AppointmentStatusConfirmed,
			scheduling.AppointmentStatusCancelled,
			scheduling.AppointmentStatusScheduled,
			scheduling.AppointmentStatusCompleted,
		} {
			repo := new(MockAppointmentRepository)
			service := NewAppointmentService(repo, new(MockClientRepository), new(MockNotifier), zap.NewNop())
			ctx := context.Background()

			appointment := createTestAppointment()
			repo.On("FindByIDForAccount", ctx, testAccountID, testAppointmentID).Return(appointment, nil)
			repo.On("SaveWithLock", ctx, appointment).Return(nil)

			result, err := service.UpdateStatus(ctx, testAccountID, testAppointmentID, target)

			assert.NoError(t, err, "transition to %s", target)
			assert.Equal(t, target.String(), result.Status)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := NewAppointmentService(repo, new(MockClientRepository), new(MockNotifier), zap.NewNop())
		ctx := context.Background()

		appointment := createTestAppointment()
		repo.On("FindByIDForAccount", ctx, testAccountID, testAppointmentID).Return(appointment, nil)

		result, err := service.UpdateStatus(ctx, testAccountID, testAppointmentID, "postponed")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})
}

func TestAppointmentService_Update(t *testing.T) {
	t.Run("reschedule updates date and duration", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := NewAppointmentService(repo, new(MockClientRepository), new(MockNotifier), zap.NewNop())
		ctx := context.Background()

		appointment := createTestAppointment()
		repo.On("FindByIDForAccount", ctx, testAccountID, testAppointmentID).Return(appointment, nil)
		repo.On("SaveWithLock", ctx, appointment).Return(nil)

		newDate := time.Now().Add(72 * time.Hour)
		duration := 60
		result, err := service.Update(ctx, testAccountID, testAppointmentID, UpdateAppointmentRequest{
			AppointmentDate: &newDate,
			DurationMinutes: &duration,
		})

		assert.NoError(t, err)
		assert.Equal(t, 60, result.DurationMinutes)
		assert.True(t, newDate.Equal(result.AppointmentDate))
	})
}
