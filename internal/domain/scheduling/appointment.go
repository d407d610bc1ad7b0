package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// IsValid checks if the status is a valid AppointmentStatus
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of AppointmentStatus
func (s AppointmentStatus) String() string {
	return string(s)
}

// Appointment represents a scheduled meeting with a client.
// Unlike invoices, appointments move freely among their four statuses.
type Appointment struct {
	shared.AccountAggregateRoot
	ClientID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Title           string            `gorm:"type:varchar(200);not null"`
	Notes           string            `gorm:"type:text"`
	AppointmentDate time.Time         `gorm:"not null;index"`
	DurationMinutes int               `gorm:"not null;default:30"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
}

// TableName returns the table name for GORM
func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment creates a new scheduled appointment
func NewAppointment(accountID, clientID uuid.UUID, title, notes string, appointmentDate time.Time, durationMinutes int) (*Appointment, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID cannot be empty")
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, shared.NewValidationError("Appointment title cannot be empty")
	}
	if len(trimmed) > 200 {
		return nil, shared.NewValidationError("Appointment title cannot exceed 200 characters")
	}
	if appointmentDate.IsZero() {
		return nil, shared.NewValidationError("Appointment date is required")
	}
	if durationMinutes <= 0 {
		return nil, shared.NewValidationError("Appointment duration must be positive")
	}

	appointment := &Appointment{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		ClientID:             clientID,
		Title:                trimmed,
		Notes:                notes,
		AppointmentDate:      appointmentDate,
		DurationMinutes:      durationMinutes,
		Status:               AppointmentStatusScheduled,
	}

	appointment.AddDomainEvent(NewAppointmentCreatedEvent(appointment))

	return appointment, nil
}

// UpdateStatus moves the appointment to any valid status value
func (a *Appointment) UpdateStatus(target AppointmentStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown appointment status %q", target))
	}

	oldStatus := a.Status
	a.Status = target
	a.UpdatedAt = time.Now()

	if oldStatus != target {
		a.AddDomainEvent(NewAppointmentStatusChangedEvent(a, oldStatus))
	}

	return nil
}

// Reschedule updates the date and duration
func (a *Appointment) Reschedule(appointmentDate time.Time, durationMinutes int) error {
	if appointmentDate.IsZero() {
		return shared.NewValidationError("Appointment date is required")
	}
	if durationMinutes <= 0 {
		return shared.NewValidationError("Appointment duration must be positive")
	}

	a.AppointmentDate = appointmentDate
	a.DurationMinutes = durationMinutes
	a.UpdatedAt = time.Now()

	return nil
}

// EndsAt returns the appointment's end time
func (a *Appointment) EndsAt() time.Time {
	return a.AppointmentDate.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
