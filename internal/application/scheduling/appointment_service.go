package scheduling

import (
	"context"
	"fmt"

	"github.com/billfold/backend/internal/domain/partner"
	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentService handles appointment business operations.
// Creating an appointment triggers a best-effort client notification: a
// delivery failure is logged and reported as a warning on the response,
// never as a failure of the create itself.
type AppointmentService struct {
	appointmentRepo scheduling.AppointmentRepository
	clientRepo      partner.ClientRepository
	notifier        scheduling.Notifier
	eventPublisher  shared.EventPublisher
	logger          *zap.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(
	appointmentRepo scheduling.AppointmentRepository,
	clientRepo partner.ClientRepository,
	notifier scheduling.Notifier,
	logger *zap.Logger,
) *AppointmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *AppointmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create schedules a new appointment and notifies the client
func (s *AppointmentService) Create(ctx context.Context, accountID uuid.UUID, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	client, err := s.clientRepo.FindByIDForAccount(ctx, accountID, req.ClientID)
	if err != nil {
		if shared.IsCode(err, shared.CodeNotFound) {
			return nil, shared.NewValidationError("Client does not exist")
		}
		return nil, err
	}
	if !client.IsActive() {
		return nil, shared.NewValidationError("Client is inactive")
	}

	appointment, err := scheduling.NewAppointment(accountID, req.ClientID, req.Title, req.Notes, req.AppointmentDate, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, appointment)

	response := ToAppointmentResponse(appointment)
	if err := s.notifyClient(ctx, appointment, client); err != nil {
		s.logger.Warn("appointment notification failed",
			zap.String("appointment_id", appointment.ID.String()),
			zap.String("client_id", client.ID.String()),
			zap.Error(err))
		response.Warning = "Appointment saved, but the client notification could not be delivered"
	}

	return &response, nil
}

// GetByID retrieves an appointment by ID
func (s *AppointmentService) GetByID(ctx context.Context, accountID, appointmentID uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByIDForAccount(ctx, accountID, appointmentID)
	if err != nil {
		return nil, err
	}
	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// List retrieves appointments with filtering and pagination
func (s *AppointmentService) List(ctx context.Context, accountID uuid.UUID, filter AppointmentListFilter) ([]AppointmentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "appointment_date"
	domainFilter.OrderDir = "asc"
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}
	if filter.From != nil {
		domainFilter.Filters["appointment_date_from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["appointment_date_to"] = *filter.To
	}

	appointments, err := s.appointmentRepo.FindAllForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.appointmentRepo.CountForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToAppointmentResponses(appointments), total, nil
}

// Update edits an appointment's fields, rescheduling when date or
// duration change
func (s *AppointmentService) Update(ctx context.Context, accountID, appointmentID uuid.UUID, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByIDForAccount(ctx, accountID, appointmentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := *req.Title
		if title == "" {
			return nil, shared.NewValidationError("Appointment title cannot be empty")
		}
		appointment.Title = title
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.AppointmentDate != nil || req.DurationMinutes != nil {
		date := appointment.AppointmentDate
		if req.AppointmentDate != nil {
			date = *req.AppointmentDate
		}
		duration := appointment.DurationMinutes
		if req.DurationMinutes != nil {
			duration = *req.DurationMinutes
		}
		if err := appointment.Reschedule(date, duration); err != nil {
			return nil, err
		}
	}

	if err := s.appointmentRepo.SaveWithLock(ctx, appointment); err != nil {
		return nil, err
	}

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// UpdateStatus moves an appointment to any of the valid status values
func (s *AppointmentService) UpdateStatus(ctx context.Context, accountID, appointmentID uuid.UUID, target scheduling.AppointmentStatus) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByIDForAccount(ctx, accountID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := appointment.UpdateStatus(target); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.SaveWithLock(ctx, appointment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, appointment)

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// Delete deletes an appointment
func (s *AppointmentService) Delete(ctx context.Context, accountID, appointmentID uuid.UUID) error {
	if _, err := s.appointmentRepo.FindByIDForAccount(ctx, accountID, appointmentID); err != nil {
		return err
	}
	return s.appointmentRepo.DeleteForAccount(ctx, accountID, appointmentID)
}

func (s *AppointmentService) notifyClient(ctx context.Context, appointment *scheduling.Appointment, client *partner.Client) error {
	if s.notifier == nil {
		return nil
	}
	notification := scheduling.Notification{
		Kind:      "appointment_created",
		AccountID: appointment.AccountID,
		ClientID:  client.ID,
		Subject:   fmt.Sprintf("Appointment scheduled: %s", appointment.Title),
		Body: fmt.Sprintf("Hi %s, your appointment %q is scheduled for %s (%d minutes).",
			client.Name, appointment.Title, appointment.AppointmentDate.Format("Jan 2, 2006 15:04"), appointment.DurationMinutes),
		ReferenceID: appointment.ID,
	}
	return s.notifier.Notify(ctx, notification)
}

func (s *AppointmentService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("domain event publish failed", zap.Error(err))
	}
	aggregate.ClearDomainEvents()
}
