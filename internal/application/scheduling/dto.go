package scheduling

import (
	"time"

	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/google/uuid"
)

// CreateAppointmentRequest is the input for scheduling an appointment
type CreateAppointmentRequest struct {
	ClientID        uuid.UUID
	Title           string
	Notes           string
	AppointmentDate time.Time
	DurationMinutes int
}

// UpdateAppointmentRequest is the input for editing an appointment
type UpdateAppointmentRequest struct {
	Title           *string
	Notes           *string
	AppointmentDate *time.Time
	DurationMinutes *int
}

// AppointmentListFilter narrows appointment listings
type AppointmentListFilter struct {
	ClientID *uuid.UUID
	Status   *scheduling.AppointmentStatus
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// AppointmentResponse is the read model returned for an appointment.
// Warning is set when a best-effort side effect (client notification)
// failed; the operation itself still succeeded.
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	ClientID        uuid.UUID `json:"client_id"`
	Title           string    `json:"title"`
	Notes           string    `json:"notes,omitempty"`
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
	Warning         string    `json:"warning,omitempty"`
}

// ToAppointmentResponse maps an appointment to its read model
func ToAppointmentResponse(a *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		Title:           a.Title,
		Notes:           a.Notes,
		AppointmentDate: a.AppointmentDate,
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status.String(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Version:         a.Version,
	}
}

// ToAppointmentResponses maps a slice of appointments
func ToAppointmentResponses(appointments []scheduling.Appointment) []AppointmentResponse {
	responses := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = ToAppointmentResponse(&appointments[i])
	}
	return responses
}
