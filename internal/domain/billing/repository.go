package billing

import (
	"context"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EstimateRepository defines the interface for estimate persistence
type EstimateRepository interface {
	// FindByID finds an estimate by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Estimate, error)

	// FindByIDForAccount finds an estimate by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Estimate, error)

	// FindAllForAccount finds all estimates for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Estimate, error)

	// Save creates or updates an estimate
	Save(ctx context.Context, estimate *Estimate) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, estimate *Estimate) error

	// DeleteForAccount deletes an estimate for an account
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error

	// CountForAccount counts estimates for an account
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByClient counts estimates referencing a client
	CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForAccount finds an invoice by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Invoice, error)

	// FindByEstimateID finds the invoice referencing an estimate, if any
	FindByEstimateID(ctx context.Context, accountID, estimateID uuid.UUID) (*Invoice, error)

	// FindAllForAccount finds all invoices for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// DeleteForAccount deletes an invoice for an account
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error

	// CountForAccount counts invoices for an account
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts invoices in a given status for an account
	CountByStatus(ctx context.Context, accountID uuid.UUID, status InvoiceStatus) (int64, error)

	// CountByClient counts invoices referencing a client
	CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error)
}

// ReceiptRepository defines the interface for receipt persistence.
// Receipts are immutable financial records: there is no update, and no
// delete through the normal flow.
type ReceiptRepository interface {
	// FindByID finds a receipt by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)

	// FindByIDForAccount finds a receipt by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Receipt, error)

	// FindByInvoiceID finds all receipts generated for an invoice
	FindByInvoiceID(ctx context.Context, accountID, invoiceID uuid.UUID) ([]Receipt, error)

	// FindAllForAccount finds all receipts for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Receipt, error)

	// Save persists a new receipt
	Save(ctx context.Context, receipt *Receipt) error

	// CountForAccount counts receipts for an account
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByClient counts receipts referencing a client
	CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error)
}

// ConversionStore executes the cross-document conversion operations inside
// a single store transaction. The estimate row is flipped with a
// conditional update (status and version both checked) so that of two
// concurrent conversions exactly one wins; the loser observes
// ErrConcurrencyConflict or ErrInvalidState and no invoice is left behind.
type ConversionStore interface {
	// ConvertEstimate atomically marks the estimate converted and inserts
	// the invoice produced from it. If the conditional update on the
	// estimate touches no row, nothing is persisted.
	ConvertEstimate(ctx context.Context, estimate *Estimate, invoice *Invoice) error

	// UndoConversion atomically deletes the invoice referencing the
	// estimate (if any) and resets the estimate status to approved.
	// Idempotent: absent invoices are not an error.
	UndoConversion(ctx context.Context, accountID, estimateID uuid.UUID) error
}
