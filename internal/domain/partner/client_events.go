package partner

import (
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeClient = "Client"

// Event type constants
const (
	EventTypeClientCreated       = "ClientCreated"
	EventTypeClientStatusChanged = "ClientStatusChanged"
	EventTypeClientDeleted       = "ClientDeleted"
)

// ClientCreatedEvent is published when a new client is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(client *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, client.ID, AggregateTypeClient, client.AccountID),
		ClientID:        client.ID,
		Name:            client.Name,
		Email:           client.Email,
	}
}

// ClientStatusChangedEvent is published when a client is activated or deactivated
type ClientStatusChangedEvent struct {
	shared.BaseDomainEvent
	ClientID  uuid.UUID    `json:"client_id"`
	OldStatus ClientStatus `json:"old_status"`
	NewStatus ClientStatus `json:"new_status"`
}

// NewClientStatusChangedEvent creates a new ClientStatusChangedEvent
func NewClientStatusChangedEvent(client *Client, oldStatus ClientStatus) *ClientStatusChangedEvent {
	return &ClientStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientStatusChanged, client.ID, AggregateTypeClient, client.AccountID),
		ClientID:        client.ID,
		OldStatus:       oldStatus,
		NewStatus:       client.Status,
	}
}

// ClientDeletedEvent is published when a client is deleted
type ClientDeletedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
}

// NewClientDeletedEvent creates a new ClientDeletedEvent
func NewClientDeletedEvent(client *Client) *ClientDeletedEvent {
	return &ClientDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientDeleted, client.ID, AggregateTypeClient, client.AccountID),
		ClientID:        client.ID,
		Name:            client.Name,
	}
}
