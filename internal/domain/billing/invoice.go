package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/billfold/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft    InvoiceStatus = "draft"
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusSent     InvoiceStatus = "sent"
	InvoiceStatusViewed   InvoiceStatus = "viewed"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusPartial  InvoiceStatus = "partial"
	InvoiceStatusOverdue  InvoiceStatus = "overdue"
	InvoiceStatusArchived InvoiceStatus = "archived"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusSent, InvoiceStatusViewed,
		InvoiceStatusPaid, InvoiceStatusPartial, InvoiceStatusOverdue, InvoiceStatusArchived:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses with no further transitions
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusArchived
}

// CanTransitionTo checks if the status can transition to the target status.
// Any non-terminal status may be archived; unreachable targets are rejected,
// never clamped.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == InvoiceStatusArchived {
		return true
	}
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusPending
	case InvoiceStatusPending:
		return target == InvoiceStatusSent
	case InvoiceStatusSent:
		return target == InvoiceStatusViewed
	case InvoiceStatusViewed:
		return target == InvoiceStatusPaid || target == InvoiceStatusPartial || target == InvoiceStatusOverdue
	case InvoiceStatusPartial:
		return target == InvoiceStatusPaid || target == InvoiceStatusOverdue
	case InvoiceStatusOverdue:
		return target == InvoiceStatusPaid || target == InvoiceStatusPartial
	}
	return false
}

// Invoice represents an invoice aggregate root.
// Invoices are created either manually (draft) or by converting an estimate
// (pending, with EstimateID carrying the back-reference).
type Invoice struct {
	shared.AccountAggregateRoot
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_account_number,priority:2"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	EstimateID    *uuid.UUID      `gorm:"type:uuid;index"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DueDate       time.Time       `gorm:"not null"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
	PaidAt        *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new manual invoice in draft status
func NewInvoice(accountID, clientID uuid.UUID, invoiceNumber, title, description string, amount valueobject.Money, dueDate time.Time) (*Invoice, error) {
	if err := validateInvoiceNumber(invoiceNumber); err != nil {
		return nil, err
	}
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID cannot be empty")
	}
	if err := validateDocumentTitle(title); err != nil {
		return nil, err
	}
	if err := validateDocumentAmount(amount); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		dueDate = time.Now().AddDate(0, 1, 0)
	}

	invoice := &Invoice{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		InvoiceNumber:        invoiceNumber,
		ClientID:             clientID,
		Title:                strings.TrimSpace(title),
		Description:          description,
		Amount:               amount.Amount(),
		DueDate:              dueDate,
		Status:               InvoiceStatusDraft,
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// NewInvoiceFromEstimate builds the invoice produced by converting an
// estimate. Client, title, description and amount are copied from the
// source; the invoice starts pending and keeps the back-reference.
func NewInvoiceFromEstimate(estimate *Estimate, invoiceNumber string, dueDate time.Time) (*Invoice, error) {
	if err := validateInvoiceNumber(invoiceNumber); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		dueDate = time.Now().AddDate(0, 1, 0)
	}

	estimateID := estimate.ID
	invoice := &Invoice{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(estimate.AccountID),
		InvoiceNumber:        invoiceNumber,
		ClientID:             estimate.ClientID,
		EstimateID:           &estimateID,
		Title:                estimate.Title,
		Description:          estimate.Description,
		Amount:               estimate.Amount,
		DueDate:              dueDate,
		Status:               InvoiceStatusPending,
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// UpdateDetails updates the invoice's editable fields.
// Not allowed once the invoice is in a terminal status.
func (i *Invoice) UpdateDetails(title, description string, amount valueobject.Money, dueDate time.Time) error {
	if i.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeInvalidState, fmt.Sprintf("Cannot edit an invoice in %s status", i.Status))
	}
	if err := validateDocumentTitle(title); err != nil {
		return err
	}
	if err := validateDocumentAmount(amount); err != nil {
		return err
	}

	i.Title = strings.TrimSpace(title)
	i.Description = description
	i.Amount = amount.Amount()
	if !dueDate.IsZero() {
		i.DueDate = dueDate
	}
	i.UpdatedAt = time.Now()

	return nil
}

// Transition moves the invoice to the target status per the state machine
func (i *Invoice) Transition(target InvoiceStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown invoice status %q", target))
	}
	if !i.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(fmt.Sprintf("Cannot move invoice from %s to %s", i.Status, target))
	}

	oldStatus := i.Status
	now := time.Now()
	i.Status = target
	if target == InvoiceStatusPaid {
		i.PaidAt = &now
	}
	i.UpdatedAt = now

	i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, oldStatus))

	return nil
}

// IsPaid returns true if the invoice has been paid in full
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice is past due and not settled
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status.IsTerminal() {
		return false
	}
	return now.After(i.DueDate)
}

// GetAmountMoney returns the amount as Money value object
func (i *Invoice) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Amount)
}

func validateInvoiceNumber(number string) error {
	if number == "" {
		return shared.NewValidationError("Invoice number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewValidationError("Invoice number cannot exceed 50 characters")
	}
	return nil
}
