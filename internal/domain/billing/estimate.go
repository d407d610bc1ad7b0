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

// EstimateStatus represents the status of an estimate
type EstimateStatus string

const (
	EstimateStatusDraft     EstimateStatus = "draft"
	EstimateStatusSent      EstimateStatus = "sent"
	EstimateStatusApproved  EstimateStatus = "approved"
	EstimateStatusConverted EstimateStatus = "converted"
)

// IsValid checks if the status is a valid EstimateStatus
func (s EstimateStatus) IsValid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusApproved, EstimateStatusConverted:
		return true
	}
	return false
}

// String returns the string representation of EstimateStatus
func (s EstimateStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
// through a direct user edit. The converted status is reachable only via
// the conversion operation, never through UpdateStatus.
func (s EstimateStatus) CanTransitionTo(target EstimateStatus) bool {
	switch s {
	case EstimateStatusDraft:
		return target == EstimateStatusSent || target == EstimateStatusApproved
	case EstimateStatusSent:
		return target == EstimateStatusApproved
	case EstimateStatusApproved, EstimateStatusConverted:
		return false
	}
	return false
}

// minimumAmount is the smallest amount a billable document may carry
var minimumAmount = decimal.NewFromFloat(0.01)

// Estimate represents a sales estimate aggregate root.
// An estimate is convertible into exactly one invoice; conversion marks it
// converted and the invoice keeps a back-reference through EstimateID.
type Estimate struct {
	shared.AccountAggregateRoot
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title        string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EstimateDate time.Time       `gorm:"not null"`
	Status       EstimateStatus  `gorm:"type:varchar(20);not null;default:'draft';index"`
	ConvertedAt  *time.Time
}

// TableName returns the table name for GORM
func (Estimate) TableName() string {
	return "estimates"
}

// NewEstimate creates a new estimate in draft status
func NewEstimate(accountID, clientID uuid.UUID, title, description string, amount valueobject.Money, estimateDate time.Time) (*Estimate, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID cannot be empty")
	}
	if err := validateDocumentTitle(title); err != nil {
		return nil, err
	}
	if err := validateDocumentAmount(amount); err != nil {
		return nil, err
	}
	if estimateDate.IsZero() {
		estimateDate = time.Now()
	}

	estimate := &Estimate{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		ClientID:             clientID,
		Title:                strings.TrimSpace(title),
		Description:          description,
		Amount:               amount.Amount(),
		EstimateDate:         estimateDate,
		Status:               EstimateStatusDraft,
	}

	estimate.AddDomainEvent(NewEstimateCreatedEvent(estimate))

	return estimate, nil
}

// UpdateDetails updates the estimate's editable fields.
// Not allowed once the estimate has been converted.
func (e *Estimate) UpdateDetails(title, description string, amount valueobject.Money, estimateDate time.Time) error {
	if e.IsConverted() {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot edit a converted estimate")
	}
	if err := validateDocumentTitle(title); err != nil {
		return err
	}
	if err := validateDocumentAmount(amount); err != nil {
		return err
	}

	e.Title = strings.TrimSpace(title)
	e.Description = description
	e.Amount = amount.Amount()
	if !estimateDate.IsZero() {
		e.EstimateDate = estimateDate
	}
	e.UpdatedAt = time.Now()

	return nil
}

// UpdateStatus moves the estimate to the target status through a user edit.
// Rejects the converted status, which only the conversion operation may set.
func (e *Estimate) UpdateStatus(target EstimateStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Unknown estimate status %q", target))
	}
	if target == EstimateStatusConverted {
		return shared.NewInvalidTransitionError("Estimates become converted only through conversion")
	}
	if !e.Status.CanTransitionTo(target) {
		return shared.NewInvalidTransitionError(fmt.Sprintf("Cannot move estimate from %s to %s", e.Status, target))
	}

	e.Status = target
	e.UpdatedAt = time.Now()

	return nil
}

// MarkConverted records that an invoice now references this estimate.
// Fails if the estimate is already converted.
func (e *Estimate) MarkConverted() error {
	if e.IsConverted() {
		return shared.NewDomainError(shared.CodeInvalidState, "Estimate has already been converted")
	}

	now := time.Now()
	e.Status = EstimateStatusConverted
	e.ConvertedAt = &now
	e.UpdatedAt = now

	e.AddDomainEvent(NewEstimateConvertedEvent(e))

	return nil
}

// ResetToApproved reverses a conversion, returning the estimate to approved.
// Idempotent: resetting an unconverted estimate still lands on approved and
// emits no event.
func (e *Estimate) ResetToApproved() {
	wasConverted := e.IsConverted()
	e.Status = EstimateStatusApproved
	e.ConvertedAt = nil
	e.UpdatedAt = time.Now()

	if wasConverted {
		e.AddDomainEvent(NewEstimateConversionUndoneEvent(e))
	}
}

// IsConverted returns true if the estimate has been converted to an invoice
func (e *Estimate) IsConverted() bool {
	return e.Status == EstimateStatusConverted
}

// GetAmountMoney returns the amount as Money value object
func (e *Estimate) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(e.Amount)
}

func validateDocumentTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return shared.NewValidationError("Title cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewValidationError("Title cannot exceed 200 characters")
	}
	return nil
}

func validateDocumentAmount(amount valueobject.Money) error {
	if amount.Amount().LessThan(minimumAmount) {
		return shared.NewValidationError("Amount must be at least 0.01")
	}
	return nil
}
