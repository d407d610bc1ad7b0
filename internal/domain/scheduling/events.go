package scheduling

import (
	"time"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeAppointment = "Appointment"

// Event type constants
const (
	EventTypeAppointmentCreated       = "AppointmentCreated"
	EventTypeAppointmentStatusChanged = "AppointmentStatusChanged"
)

// AppointmentCreatedEvent is published after an appointment is durably
// persisted. The notification collaborator reacts to it post-commit.
type AppointmentCreatedEvent struct {
	shared.BaseDomainEvent
	AppointmentID   uuid.UUID `json:"appointment_id"`
	ClientID        uuid.UUID `json:"client_id"`
	Title           string    `json:"title"`
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
}

// NewAppointmentCreatedEvent creates a new AppointmentCreatedEvent
func NewAppointmentCreatedEvent(appointment *Appointment) *AppointmentCreatedEvent {
	return &AppointmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentCreated, appointment.ID, AggregateTypeAppointment, appointment.AccountID),
		AppointmentID:   appointment.ID,
		ClientID:        appointment.ClientID,
		Title:           appointment.Title,
		AppointmentDate: appointment.AppointmentDate,
		DurationMinutes: appointment.DurationMinutes,
	}
}

// AppointmentStatusChangedEvent is published when an appointment's status changes
type AppointmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	AppointmentID uuid.UUID         `json:"appointment_id"`
	OldStatus     AppointmentStatus `json:"old_status"`
	NewStatus     AppointmentStatus `json:"new_status"`
}

// NewAppointmentStatusChangedEvent creates a new AppointmentStatusChangedEvent
func NewAppointmentStatusChangedEvent(appointment *Appointment, oldStatus AppointmentStatus) *AppointmentStatusChangedEvent {
	return &AppointmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAppointmentStatusChanged, appointment.ID, AggregateTypeAppointment, appointment.AccountID),
		AppointmentID:   appointment.ID,
		OldStatus:       oldStatus,
		NewStatus:       appointment.Status,
	}
}
