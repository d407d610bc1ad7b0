package persistence

import (
	"context"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConversionStore executes estimate conversion and its undo inside a
// single transaction. The estimate row is flipped with a conditional
// UPDATE that checks both status and version, so of two concurrent
// conversions exactly one touches a row; the loser gets
// ErrConcurrencyConflict and the transaction inserts no invoice.
type GormConversionStore struct {
	db *gorm.DB
}

// NewGormConversionStore creates a new GormConversionStore
func NewGormConversionStore(db *gorm.DB) *GormConversionStore {
	return &GormConversionStore{db: db}
}

// ConvertEstimate atomically marks the estimate converted and inserts the
// invoice produced from it
func (s *GormConversionStore) ConvertEstimate(ctx context.Context, estimate *billing.Estimate, invoice *billing.Invoice) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&billing.Estimate{}).
			Where("account_id = ? AND id = ? AND status <> ? AND version = ?",
				estimate.AccountID, estimate.ID, billing.EstimateStatusConverted, estimate.Version).
			Updates(map[string]interface{}{
				"status":       estimate.Status,
				"converted_at": estimate.ConvertedAt,
				"updated_at":   estimate.UpdatedAt,
				"version":      estimate.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return tx.Create(invoice).Error
	})
	if err != nil {
		return err
	}
	estimate.IncrementVersion()
	return nil
}

// UndoConversion atomically deletes the invoice referencing the estimate
// and resets the estimate status to approved. Running it against an
// estimate that was never converted, or undoing twice, changes nothing.
func (s *GormConversionStore) UndoConversion(ctx context.Context, accountID, estimateID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&billing.Invoice{}, "account_id = ? AND estimate_id = ?", accountID, estimateID).Error; err != nil {
			return err
		}
		return tx.Model(&billing.Estimate{}).
			Where("account_id = ? AND id = ? AND status = ?", accountID, estimateID, billing.EstimateStatusConverted).
			Updates(map[string]interface{}{
				"status":       billing.EstimateStatusApproved,
				"converted_at": nil,
				"version":      gorm.Expr("version + 1"),
			}).Error
	})
}

var _ billing.ConversionStore = (*GormConversionStore)(nil)
