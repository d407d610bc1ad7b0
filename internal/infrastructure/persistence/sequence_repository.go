package persistence

import (
	"context"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNumberGenerator draws document numbers from the document_sequences
// table. Each draw increments next_value with a single conditional UPDATE
// inside a transaction, so concurrent draws serialize on the row and no
// value is ever handed out twice. Deleting documents never rewinds a
// sequence.
type GormNumberGenerator struct {
	db *gorm.DB
}

// NewGormNumberGenerator creates a new GormNumberGenerator
func NewGormNumberGenerator(db *gorm.DB) *GormNumberGenerator {
	return &GormNumberGenerator{db: db}
}

// NextInvoiceNumber draws the next invoice number for the account
func (g *GormNumberGenerator) NextInvoiceNumber(ctx context.Context, accountID uuid.UUID) (string, error) {
	return g.next(ctx, accountID, billing.SequenceKindInvoice)
}

// NextReceiptNumber draws the next receipt number for the account
func (g *GormNumberGenerator) NextReceiptNumber(ctx context.Context, accountID uuid.UUID) (string, error) {
	return g.next(ctx, accountID, billing.SequenceKindReceipt)
}

func (g *GormNumberGenerator) next(ctx context.Context, accountID uuid.UUID, kind billing.SequenceKind) (string, error) {
	var drawn int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&billing.DocumentSequence{}).
			Where("account_id = ? AND kind = ?", accountID, kind).
			Update("next_value", gorm.Expr("next_value + 1"))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			// First draw for this account and kind. A concurrent first
			// draw may have inserted the row between the UPDATE and the
			// insert; DoNothing plus the follow-up UPDATE covers both.
			seed := billing.DocumentSequence{AccountID: accountID, Kind: kind, NextValue: 1}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
				return err
			}
			result = tx.Model(&billing.DocumentSequence{}).
				Where("account_id = ? AND kind = ?", accountID, kind).
				Update("next_value", gorm.Expr("next_value + 1"))
			if result.Error != nil {
				return result.Error
			}
		}

		var sequence billing.DocumentSequence
		if err := tx.Where("account_id = ? AND kind = ?", accountID, kind).
			First(&sequence).Error; err != nil {
			return err
		}
		drawn = sequence.NextValue - 1
		return nil
	})
	if err != nil {
		return "", err
	}
	return billing.FormatNumber(kind, drawn), nil
}

var _ billing.NumberGenerator = (*GormNumberGenerator)(nil)
