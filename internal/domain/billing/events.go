package billing

import (
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeEstimate = "Estimate"
	AggregateTypeInvoice  = "Invoice"
	AggregateTypeReceipt  = "Receipt"
)

// Event type constants
const (
	EventTypeEstimateCreated          = "EstimateCreated"
	EventTypeEstimateConverted        = "EstimateConverted"
	EventTypeEstimateConversionUndone = "EstimateConversionUndone"
	EventTypeInvoiceCreated           = "InvoiceCreated"
	EventTypeInvoiceStatusChanged     = "InvoiceStatusChanged"
	EventTypeReceiptGenerated         = "ReceiptGenerated"
)

// EstimateCreatedEvent is published when a new estimate is created
type EstimateCreatedEvent struct {
	shared.BaseDomainEvent
	EstimateID uuid.UUID       `json:"estimate_id"`
	ClientID   uuid.UUID       `json:"client_id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
}

// NewEstimateCreatedEvent creates a new EstimateCreatedEvent
func NewEstimateCreatedEvent(estimate *Estimate) *EstimateCreatedEvent {
	return &EstimateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateCreated, estimate.ID, AggregateTypeEstimate, estimate.AccountID),
		EstimateID:      estimate.ID,
		ClientID:        estimate.ClientID,
		Title:           estimate.Title,
		Amount:          estimate.Amount,
	}
}

// EstimateConvertedEvent is published when an estimate becomes an invoice
type EstimateConvertedEvent struct {
	shared.BaseDomainEvent
	EstimateID uuid.UUID `json:"estimate_id"`
	ClientID   uuid.UUID `json:"client_id"`
}

// NewEstimateConvertedEvent creates a new EstimateConvertedEvent
func NewEstimateConvertedEvent(estimate *Estimate) *EstimateConvertedEvent {
	return &EstimateConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateConverted, estimate.ID, AggregateTypeEstimate, estimate.AccountID),
		EstimateID:      estimate.ID,
		ClientID:        estimate.ClientID,
	}
}

// EstimateConversionUndoneEvent is published when a conversion is reversed
type EstimateConversionUndoneEvent struct {
	shared.BaseDomainEvent
	EstimateID uuid.UUID `json:"estimate_id"`
}

// NewEstimateConversionUndoneEvent creates a new EstimateConversionUndoneEvent
func NewEstimateConversionUndoneEvent(estimate *Estimate) *EstimateConversionUndoneEvent {
	return &EstimateConversionUndoneEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEstimateConversionUndone, estimate.ID, AggregateTypeEstimate, estimate.AccountID),
		EstimateID:      estimate.ID,
	}
}

// InvoiceCreatedEvent is published when an invoice is created, either
// manually or via conversion
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	EstimateID    *uuid.UUID      `json:"estimate_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, invoice.ID, AggregateTypeInvoice, invoice.AccountID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		ClientID:        invoice.ClientID,
		EstimateID:      invoice.EstimateID,
		Amount:          invoice.Amount,
	}
}

// InvoiceStatusChangedEvent is published on every invoice status transition
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID     `json:"invoice_id"`
	OldStatus InvoiceStatus `json:"old_status"`
	NewStatus InvoiceStatus `json:"new_status"`
}

// NewInvoiceStatusChangedEvent creates a new InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(invoice *Invoice, oldStatus InvoiceStatus) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, invoice.ID, AggregateTypeInvoice, invoice.AccountID),
		InvoiceID:       invoice.ID,
		OldStatus:       oldStatus,
		NewStatus:       invoice.Status,
	}
}

// ReceiptGeneratedEvent is published when a receipt is generated
type ReceiptGeneratedEvent struct {
	shared.BaseDomainEvent
	ReceiptID     uuid.UUID       `json:"receipt_id"`
	ReceiptNumber string          `json:"receipt_number"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewReceiptGeneratedEvent creates a new ReceiptGeneratedEvent
func NewReceiptGeneratedEvent(receipt *Receipt) *ReceiptGeneratedEvent {
	return &ReceiptGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptGenerated, receipt.ID, AggregateTypeReceipt, receipt.AccountID),
		ReceiptID:       receipt.ID,
		ReceiptNumber:   receipt.ReceiptNumber,
		InvoiceID:       receipt.InvoiceID,
		Amount:          receipt.Amount,
	}
}
