package partner

import (
	"strings"
	"testing"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	accountID := uuid.New()

	t.Run("creates active client", func(t *testing.T) {
		client, err := NewClient(accountID, "Acme Corp", "billing@acme.com", "555-0100", "123 Main St")
		require.NoError(t, err)

		assert.Equal(t, "Acme Corp", client.Name)
		assert.Equal(t, ClientStatusActive, client.Status)
		assert.Equal(t, accountID, client.AccountID)
		assert.NotEqual(t, uuid.Nil, client.ID)
		assert.Len(t, client.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeClientCreated, client.GetDomainEvents()[0].EventType())
	})

	t.Run("trims name whitespace", func(t *testing.T) {
		client, err := NewClient(accountID, "  Acme  ", "", "", "")
		require.NoError(t, err)
		assert.Equal(t, "Acme", client.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewClient(accountID, "   ", "", "", "")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		_, err := NewClient(accountID, strings.Repeat("x", 201), "", "", "")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewClient(accountID, "Acme", "not-an-email", "", "")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("allows empty email", func(t *testing.T) {
		_, err := NewClient(accountID, "Acme", "", "", "")
		assert.NoError(t, err)
	})
}

func TestClient_Update(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme", "a@acme.com", "", "")
	require.NoError(t, err)

	t.Run("updates fields", func(t *testing.T) {
		err := client.Update("Acme Corporation", "new@acme.com", "555-0199", "456 Oak Ave", "net 30")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corporation", client.Name)
		assert.Equal(t, "new@acme.com", client.Email)
		assert.Equal(t, "net 30", client.Notes)
	})

	t.Run("rejects invalid update", func(t *testing.T) {
		err := client.Update("", "", "", "", "")
		assert.Error(t, err)
		assert.Equal(t, "Acme Corporation", client.Name)
	})
}

func TestClient_StatusChanges(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme", "", "", "")
	require.NoError(t, err)

	client.Deactivate()
	assert.Equal(t, ClientStatusInactive, client.Status)
	assert.False(t, client.IsActive())

	client.Activate()
	assert.Equal(t, ClientStatusActive, client.Status)
	assert.True(t, client.IsActive())
}

func TestClientStatus_IsValid(t *testing.T) {
	assert.True(t, ClientStatusActive.IsValid())
	assert.True(t, ClientStatusInactive.IsValid())
	assert.False(t, ClientStatus("suspended").IsValid())
}
