package handler

import (
	"time"

	billingapp "github.com/billfold/backend/internal/application/billing"
	"github.com/billfold/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EstimateHandler handles estimate endpoints, including conversion to
// invoice and conversion undo.
type EstimateHandler struct {
	BaseHandler
	estimateService *billingapp.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler
func NewEstimateHandler(estimateService *billingapp.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

// CreateEstimateRequest is the request body for creating an estimate
type CreateEstimateRequest struct {
	ClientID     uuid.UUID  `json:"client_id" binding:"required"`
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Description  string     `json:"description" binding:"max=2000"`
	Amount       float64    `json:"amount" binding:"required,gt=0"`
	EstimateDate *time.Time `json:"estimate_date"`
}

// UpdateEstimateRequest is the request body for editing an estimate
type UpdateEstimateRequest struct {
	Title        *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string    `json:"description" binding:"omitempty,max=2000"`
	Amount       *float64   `json:"amount" binding:"omitempty,gt=0"`
	EstimateDate *time.Time `json:"estimate_date"`
}

// UpdateEstimateStatusRequest is the request body for a status change
type UpdateEstimateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent approved"`
}

// ListEstimatesRequest holds query parameters for listing estimates
type ListEstimatesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=draft sent approved converted"`
	OrderBy  string `form:"order_by" binding:"omitempty,max=64"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Create handles POST /estimates
func (h *EstimateHandler) Create(c *gin.Context) {
	var req CreateEstimateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	appReq := billingapp.CreateEstimateRequest{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      toDecimal(req.Amount),
	}
	if req.EstimateDate != nil {
		appReq.EstimateDate = *req.EstimateDate
	}

	estimate, err := h.estimateService.Create(c.Request.Context(), accountID(c), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, estimate)
}

// GetByID handles GET /estimates/:id
func (h *EstimateHandler) GetByID(c *gin.Context) {
	estimateID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	estimate, err := h.estimateService.GetByID(c.Request.Context(), accountID(c), estimateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, estimate)
}

// List handles GET /estimates
func (h *EstimateHandler) List(c *gin.Context) {
	var req ListEstimatesRequest
	if !h.bindQuery(c, &req) {
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filter := billingapp.EstimateListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
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
		status := billing.EstimateStatus(req.Status)
		filter.Status = &status
	}

	estimates, total, err := h.estimateService.List(c.Request.Context(), accountID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, estimates, req.Page, req.PageSize, total)
}

// Update handles PUT /estimates/:id
func (h *EstimateHandler) Update(c *gin.Context) {
	estimateID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateEstimateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	estimate, err := h.estimateService.Update(c.Request.Context(), accountID(c), estimateID, billingapp.UpdateEstimateRequest{
		Title:        req.Title,
		Description:  req.Description,
		Amount:       toDecimalPtr(req.Amount),
		EstimateDate: req.EstimateDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, estimate)
}

// UpdateStatus handles PATCH /estimates/:id/status. The converted
// status is reserved for the conversion endpoint.
func (h *EstimateHandler) UpdateStatus(c *gin.Context) {
	estimateID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateEstimateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	estimate, err := h.estimateService.UpdateStatus(c.Request.Context(), accountID(c), estimateID, billing.EstimateStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, estimate)
}

// Convert handles POST /estimates/:id/convert. On success it returns
// the newly created invoice with status 201.
func (h *EstimateHandler) Convert(c *gin.Context) {
	estimateID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.estimateService.Convert(c.Request.Context(), accountID(c), estimateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// UndoConversion handles POST /estimates/:id/undo-conversion. The
// estimate returns to approved and the generated invoice is removed.
func (h *EstimateHandler) UndoConversion(c *gin.Context) {
	estimateID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.estimateService.UndoConversion(c.Request.Context(), accountID(c), estimateID); err != nil {
		h.HandleError(c, err)
		return
	}

	estimate, err := h.estimateService.GetByID(c.Request.Context(), accountID(c), estimateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, estimate)
}

// Delete handles DELETE /estimates/:id
func (h *EstimateHandler) Delete(c *gin.Context) {
	estimateID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.estimateService.Delete(c.Request.Context(), accountID(c), estimateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
