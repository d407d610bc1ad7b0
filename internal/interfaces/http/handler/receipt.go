package handler

import (
	billingapp "github.com/billfold/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles read-only receipt endpoints. Receipts are
// created through the invoice receipt endpoint and never modified.
type ReceiptHandler struct {
	BaseHandler
	receiptService *billingapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *billingapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// ListReceiptsRequest holds query parameters for listing receipts
type ListReceiptsRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	ClientID  string `form:"client_id" binding:"omitempty,uuid"`
	InvoiceID string `form:"invoice_id" binding:"omitempty,uuid"`
}

// GetByID handles GET /receipts/:id
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	receiptID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), accountID(c), receiptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// List handles GET /receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	var req ListReceiptsRequest
	if !h.bindQuery(c, &req) {
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filter := billingapp.ReceiptListFilter{
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
	if req.InvoiceID != "" {
		invoiceID, err := uuid.Parse(req.InvoiceID)
		if err != nil {
			h.BadRequest(c, "invalid invoice_id parameter")
			return
		}
		filter.InvoiceID = &invoiceID
	}

	receipts, total, err := h.receiptService.List(c.Request.Context(), accountID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, req.Page, req.PageSize, total)
}

// ListByInvoice handles GET /invoices/:id/receipts
func (h *ReceiptHandler) ListByInvoice(c *gin.Context) {
	invoiceID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	receipts, err := h.receiptService.ListByInvoice(c.Request.Context(), accountID(c), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipts)
}
