package billing

import (
	"context"

	"github.com/google/uuid"
)

// SummaryCache caches per-account invoice status summaries. Lookups and
// writes are best-effort: a miss or a failed store falls back to counting
// in the database, so implementations report no errors.
type SummaryCache interface {
	// Get returns the cached summary for the account, if present
	Get(ctx context.Context, accountID uuid.UUID) (*InvoiceStatusSummary, bool)

	// Set stores the summary for the account
	Set(ctx context.Context, accountID uuid.UUID, summary *InvoiceStatusSummary)

	// Invalidate drops the cached summary for the account
	Invalidate(ctx context.Context, accountID uuid.UUID)
}
