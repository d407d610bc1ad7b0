package billing

import (
	"time"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEstimateRequest is the input for creating an estimate
type CreateEstimateRequest struct {
	ClientID     uuid.UUID
	Title        string
	Description  string
	Amount       decimal.Decimal
	EstimateDate time.Time
}

// UpdateEstimateRequest is the input for editing an estimate's fields
type UpdateEstimateRequest struct {
	Title        *string
	Description  *string
	Amount       *decimal.Decimal
	EstimateDate *time.Time
}

// EstimateListFilter narrows estimate listings
type EstimateListFilter struct {
	ClientID *uuid.UUID
	Status   *billing.EstimateStatus
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// EstimateResponse is the read model returned for an estimate
type EstimateResponse struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"client_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	EstimateDate time.Time       `json:"estimate_date"`
	Status       string          `json:"status"`
	ConvertedAt  *time.Time      `json:"converted_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToEstimateResponse maps an estimate to its read model
func ToEstimateResponse(e *billing.Estimate) EstimateResponse {
	return EstimateResponse{
		ID:           e.ID,
		ClientID:     e.ClientID,
		Title:        e.Title,
		Description:  e.Description,
		Amount:       e.Amount,
		EstimateDate: e.EstimateDate,
		Status:       e.Status.String(),
		ConvertedAt:  e.ConvertedAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		Version:      e.Version,
	}
}

// ToEstimateResponses maps a slice of estimates
func ToEstimateResponses(estimates []billing.Estimate) []EstimateResponse {
	responses := make([]EstimateResponse, len(estimates))
	for i := range estimates {
		responses[i] = ToEstimateResponse(&estimates[i])
	}
	return responses
}

// CreateInvoiceRequest is the input for creating a manual invoice
type CreateInvoiceRequest struct {
	ClientID    uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
}

// UpdateInvoiceRequest is the input for editing an invoice's fields
type UpdateInvoiceRequest struct {
	Title       *string
	Description *string
	Amount      *decimal.Decimal
	DueDate     *time.Time
}

// InvoiceListFilter narrows invoice listings
type InvoiceListFilter struct {
	ClientID *uuid.UUID
	Status   *billing.InvoiceStatus
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// InvoiceResponse is the read model returned for an invoice
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	EstimateID    *uuid.UUID      `json:"estimate_id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToInvoiceResponse maps an invoice to its read model
func ToInvoiceResponse(i *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		ClientID:      i.ClientID,
		EstimateID:    i.EstimateID,
		Title:         i.Title,
		Description:   i.Description,
		Amount:        i.Amount,
		DueDate:       i.DueDate,
		Status:        i.Status.String(),
		PaidAt:        i.PaidAt,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
		Version:       i.Version,
	}
}

// ToInvoiceResponses maps a slice of invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// InvoiceStatusSummary holds per-status invoice counts for an account
type InvoiceStatusSummary struct {
	Draft    int64 `json:"draft"`
	Pending  int64 `json:"pending"`
	Sent     int64 `json:"sent"`
	Viewed   int64 `json:"viewed"`
	Paid     int64 `json:"paid"`
	Partial  int64 `json:"partial"`
	Overdue  int64 `json:"overdue"`
	Archived int64 `json:"archived"`
	Total    int64 `json:"total"`
}

// GenerateReceiptRequest is the input for generating a receipt
type GenerateReceiptRequest struct {
	PaymentMethod billing.PaymentMethod
	Notes         string
}

// ReceiptListFilter narrows receipt listings
type ReceiptListFilter struct {
	ClientID  *uuid.UUID
	InvoiceID *uuid.UUID
	Page      int
	PageSize  int
}

// ReceiptResponse is the read model returned for a receipt
type ReceiptResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	IssuedAt      time.Time       `json:"issued_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToReceiptResponse maps a receipt to its read model
func ToReceiptResponse(r *billing.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		ClientID:      r.ClientID,
		InvoiceID:     r.InvoiceID,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod.String(),
		Notes:         r.Notes,
		IssuedAt:      r.IssuedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// ToReceiptResponses maps a slice of receipts
func ToReceiptResponses(receipts []billing.Receipt) []ReceiptResponse {
	responses := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = ToReceiptResponse(&receipts[i])
	}
	return responses
}
