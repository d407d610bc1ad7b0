package billing

import (
	"time"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/billfold/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Receipt represents an immutable financial record of a payment against an
// invoice. The amount is a snapshot of the invoice amount at generation
// time; later edits to the invoice never flow back into the receipt.
type Receipt struct {
	shared.AccountAggregateRoot
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_receipt_account_number,priority:2"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;default:'other'"`
	Notes         string          `gorm:"type:text"`
	IssuedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Receipt) TableName() string {
	return "receipts"
}

// NewReceipt generates a receipt for an invoice, snapshotting its amount.
// Multiple receipts may exist per invoice over time; each captures the
// invoice amount as of its own generation.
func NewReceipt(invoice *Invoice, receiptNumber string, method PaymentMethod, notes string) (*Receipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewValidationError("Receipt number cannot be empty")
	}
	if method == "" {
		method = PaymentMethodOther
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("Unknown payment method")
	}

	receipt := &Receipt{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(invoice.AccountID),
		ReceiptNumber:        receiptNumber,
		ClientID:             invoice.ClientID,
		InvoiceID:            invoice.ID,
		Amount:               invoice.Amount,
		PaymentMethod:        method,
		Notes:                notes,
		IssuedAt:             time.Now(),
	}

	receipt.AddDomainEvent(NewReceiptGeneratedEvent(receipt))

	return receipt, nil
}

// GetAmountMoney returns the snapshotted amount as Money value object
func (r *Receipt) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(r.Amount)
}
