package scheduling

import (
	"context"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentRepository defines the interface for appointment persistence
type AppointmentRepository interface {
	// FindByID finds an appointment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// FindByIDForAccount finds an appointment by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Appointment, error)

	// FindAllForAccount finds all appointments for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Appointment, error)

	// Save creates or updates an appointment
	Save(ctx context.Context, appointment *Appointment) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, appointment *Appointment) error

	// DeleteForAccount deletes an appointment for an account
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error

	// CountForAccount counts appointments for an account
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByClient counts appointments referencing a client
	CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error)
}

// Notification carries the payload delivered to a client after a
// scheduling change
type Notification struct {
	Kind        string    `json:"kind"`
	AccountID   uuid.UUID `json:"account_id"`
	ClientID    uuid.UUID `json:"client_id"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	ReferenceID uuid.UUID `json:"reference_id"`
}

// Notifier is the outbound notification collaborator. Delivery is
// best-effort: failures are logged and surfaced as warnings, never as a
// failure of the operation that triggered them.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
