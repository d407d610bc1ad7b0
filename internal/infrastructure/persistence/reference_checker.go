package persistence

import (
	"context"

	"github.com/billfold/backend/internal/application/partner"
	"github.com/billfold/backend/internal/domain/billing"
	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReferenceChecker reports whether any document or appointment still
// points at a client. Clients with references are blocked from deletion.
type GormReferenceChecker struct {
	db *gorm.DB
}

// NewGormReferenceChecker creates a new GormReferenceChecker
func NewGormReferenceChecker(db *gorm.DB) *GormReferenceChecker {
	return &GormReferenceChecker{db: db}
}

// HasReferences checks estimates, invoices, receipts and appointments for
// rows referencing the client
func (c *GormReferenceChecker) HasReferences(ctx context.Context, accountID, clientID uuid.UUID) (bool, error) {
	tables := []interface{}{
		&billing.Estimate{},
		&billing.Invoice{},
		&billing.Receipt{},
		&scheduling.Appointment{},
	}
	for _, model := range tables {
		var count int64
		if err := c.db.WithContext(ctx).
			Model(model).
			Where("account_id = ? AND client_id = ?", accountID, clientID).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

var _ partner.ReferenceChecker = (*GormReferenceChecker)(nil)
