package persistence

import (
	"context"
	"errors"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM.
// Receipts are append-only; the repository exposes no update or delete.
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by its ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Receipt, error) {
	var receipt billing.Receipt
	if err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByIDForAccount finds a receipt by ID within an account
func (r *GormReceiptRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Receipt, error) {
	var receipt billing.Receipt
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByInvoiceID finds all receipts generated for an invoice
func (r *GormReceiptRepository) FindByInvoiceID(ctx context.Context, accountID, invoiceID uuid.UUID) ([]billing.Receipt, error) {
	var receipts []billing.Receipt
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND invoice_id = ?", accountID, invoiceID).
		Order("issued_at ASC").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// FindAllForAccount finds all receipts for an account
func (r *GormReceiptRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Receipt, error) {
	var receipts []billing.Receipt
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.Receipt{}).Where("account_id = ?", accountID), filter)
	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Save persists a new receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *billing.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

// CountForAccount counts receipts for an account
func (r *GormReceiptRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&billing.Receipt{}).Where("account_id = ?", accountID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByClient counts receipts referencing a client
func (r *GormReceiptRepository) CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Receipt{}).
		Where("account_id = ? AND client_id = ?", accountID, clientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormReceiptRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ReceiptSortFields, "issued_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormReceiptRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number LIKE ?", pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "invoice_id":
			query = query.Where("invoice_id = ?", value)
		}
	}
	return query
}

var _ billing.ReceiptRepository = (*GormReceiptRepository)(nil)
