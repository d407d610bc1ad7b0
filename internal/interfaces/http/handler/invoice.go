package handler

import (
	"time"

	billingapp "github.com/billfold/backend/internal/application/billing"
	"github.com/billfold/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice endpoints, including status changes,
// receipt generation and the per-status summary.
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceRequest is the request body for creating a manual invoice
type CreateInvoiceRequest struct {
	ClientID    uuid.UUID  `json:"client_id" binding:"required"`
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateInvoiceRequest is the request body for editing an invoice
type UpdateInvoiceRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Amount      *float64   `json:"amount" binding:"omitempty,gt=0"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateInvoiceStatusRequest is the request body for a status change
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft pending sent viewed paid partial overdue archived"`
}

// GenerateReceiptRequest is the request body for generating a receipt
type GenerateReceiptRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cash card bank_transfer check other"`
	Notes         string `json:"notes" binding:"max=2000"`
}

// ListInvoicesRequest holds query parameters for listing invoices
type ListInvoicesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=draft pending sent viewed paid partial overdue archived"`
	OrderBy  string `form:"order_by" binding:"omitempty,max=64"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	appReq := billingapp.CreateInvoiceRequest{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      toDecimal(req.Amount),
	}
	if req.DueDate != nil {
		appReq.DueDate = *req.DueDate
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), accountID(c), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetByID handles GET /invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	invoiceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), accountID(c), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var req ListInvoicesRequest
	if !h.bindQuery(c, &req) {
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filter := billingapp.InvoiceListFilter{
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
		status := billing.InvoiceStatus(req.Status)
		filter.Status = &status
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), accountID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, req.Page, req.PageSize, total)
}

// Update handles PUT /invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), accountID(c), invoiceID, billingapp.UpdateInvoiceRequest{
		Title:       req.Title,
		Description: req.Description,
		Amount:      toDecimalPtr(req.Amount),
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// UpdateStatus handles PATCH /invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	invoiceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateInvoiceStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), accountID(c), invoiceID, billing.InvoiceStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, invoice)
}

// GenerateReceipt handles POST /invoices/:id/receipts
func (h *InvoiceHandler) GenerateReceipt(c *gin.Context) {
	invoiceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req GenerateReceiptRequest
	if !h.bindJSON(c, &req) {
		return
	}

	receipt, err := h.invoiceService.GenerateReceipt(c.Request.Context(), accountID(c), invoiceID, billingapp.GenerateReceiptRequest{
		PaymentMethod: billing.PaymentMethod(req.PaymentMethod),
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// StatusSummary handles GET /invoices/summary
func (h *InvoiceHandler) StatusSummary(c *gin.Context) {
	summary, err := h.invoiceService.StatusSummary(c.Request.Context(), accountID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), accountID(c), invoiceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
