package handler

import (
	"time"

	schedulingapp "github.com/billfold/backend/internal/application/scheduling"
	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentHandler handles appointment endpoints
type AppointmentHandler struct {
	BaseHandler
	appointmentService *schedulingapp.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentService *schedulingapp.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointmentRequest is the request body for scheduling an appointment
type CreateAppointmentRequest struct {
	ClientID        uuid.UUID `json:"client_id" binding:"required"`
	Title           string    `json:"title" binding:"required,min=1,max=200"`
	Notes           string    `json:"notes" binding:"max=2000"`
	AppointmentDate time.Time `json:"appointment_date" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0,lte=1440"`
}

// UpdateAppointmentRequest is the request body for editing an appointment
type UpdateAppointmentRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Notes           *string    `json:"notes" binding:"omitempty,max=2000"`
	AppointmentDate *time.Time `json:"appointment_date"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,gt=0,lte=1440"`
}

// UpdateAppointmentStatusRequest is the request body for a status change
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled confirmed completed cancelled"`
}

// ListAppointmentsRequest holds query parameters for listing appointments
type ListAppointmentsRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled"`
	From     string `form:"from" binding:"omitempty"`
	To       string `form:"to" binding:"omitempty"`
}

// Create handles POST /appointments. A successful response may carry a
// warning when the client notification could not be delivered.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.Create(c.Request.Context(), accountID(c), schedulingapp.CreateAppointmentRequest{
		ClientID:        req.ClientID,
		Title:           req.Title,
		Notes:           req.Notes,
		AppointmentDate: req.AppointmentDate,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, appointment)
}

// GetByID handles GET /appointments/:id
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	appointmentID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetByID(c.Request.Context(), accountID(c), appointmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// List handles GET /appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	var req ListAppointmentsRequest
	if !h.bindQuery(c, &req) {
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filter := schedulingapp.AppointmentListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.ClientID != "" {
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			h.BadRequest(c, "invalid client_id parameter")
			return
		}
		filter.ClientID = &clientID
	}
	if req.Status != "" {
		status := scheduling.AppointmentStatus(req.Status)
		filter.Status = &status
	}
	if req.From != "" {
		from, err := time.Parse(time.RFC3339, req.From)
		if err != nil {
			h.BadRequest(c, "invalid from parameter, expected RFC 3339 timestamp")
			return
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse(time.RFC3339, req.To)
		if err != nil {
			h.BadRequest(c, "invalid to parameter, expected RFC 3339 timestamp")
			return
		}
		filter.To = &to
	}

	appointments, total, err := h.appointmentService.List(c.Request.Context(), accountID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, appointments, req.Page, req.PageSize, total)
}

// Update handles PUT /appointments/:id
func (h *AppointmentHandler) Update(c *gin.Context) {
	appointmentID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.Update(c.Request.Context(), accountID(c), appointmentID, schedulingapp.UpdateAppointmentRequest{
		Title:           req.Title,
		Notes:           req.Notes,
		AppointmentDate: req.AppointmentDate,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// UpdateStatus handles PATCH /appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	appointmentID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request.Context(), accountID(c), appointmentID, scheduling.AppointmentStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// Delete handles DELETE /appointments/:id
func (h *AppointmentHandler) Delete(c *gin.Context) {
	appointmentID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.appointmentService.Delete(c.Request.Context(), accountID(c), appointmentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
