package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SequenceKind identifies a per-account document number sequence
type SequenceKind string

const (
	SequenceKindInvoice SequenceKind = "invoice"
	SequenceKindReceipt SequenceKind = "receipt"
)

// IsValid checks if the kind is a known sequence
func (k SequenceKind) IsValid() bool {
	return k == SequenceKindInvoice || k == SequenceKindReceipt
}

// Prefix returns the display prefix for numbers drawn from this sequence
func (k SequenceKind) Prefix() string {
	switch k {
	case SequenceKindInvoice:
		return "INV"
	case SequenceKindReceipt:
		return "RCT"
	}
	return "DOC"
}

// FormatNumber renders a drawn sequence value as a display number,
// e.g. INV-000123. Uniqueness of the value, not the format, is the
// contract the engine depends on.
func FormatNumber(kind SequenceKind, value int64) string {
	return fmt.Sprintf("%s-%06d", kind.Prefix(), value)
}

// DocumentSequence is the persisted monotonic counter backing number
// generation. Values are drawn with an atomic conditional increment at the
// store so concurrent callers can never receive the same value, and values
// are never reused, even after document deletion.
type DocumentSequence struct {
	AccountID uuid.UUID    `gorm:"type:uuid;not null;primaryKey"`
	Kind      SequenceKind `gorm:"type:varchar(20);not null;primaryKey"`
	NextValue int64        `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// NumberGenerator issues unique, human-readable document numbers per
// account. Each call returns a value never returned before for that
// account, even under concurrent calls.
type NumberGenerator interface {
	// NextInvoiceNumber draws the next invoice number for the account
	NextInvoiceNumber(ctx context.Context, accountID uuid.UUID) (string, error)

	// NextReceiptNumber draws the next receipt number for the account
	NextReceiptNumber(ctx context.Context, accountID uuid.UUID) (string, error)
}
