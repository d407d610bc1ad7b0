package persistence

import (
	"context"
	"errors"

	"github.com/billfold/backend/internal/domain/billing"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEstimateRepository implements EstimateRepository using GORM
type GormEstimateRepository struct {
	db *gorm.DB
}

// NewGormEstimateRepository creates a new GormEstimateRepository
func NewGormEstimateRepository(db *gorm.DB) *GormEstimateRepository {
	return &GormEstimateRepository{db: db}
}

// FindByID finds an estimate by its ID
func (r *GormEstimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Estimate, error) {
	var estimate billing.Estimate
	if err := r.db.WithContext(ctx).First(&estimate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &estimate, nil
}

// FindByIDForAccount finds an estimate by ID within an account
func (r *GormEstimateRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Estimate, error) {
	var estimate billing.Estimate
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&estimate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &estimate, nil
}

// FindAllForAccount finds all estimates for an account
func (r *GormEstimateRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]billing.Estimate, error) {
	var estimates []billing.Estimate
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.Estimate{}).Where("account_id = ?", accountID), filter)
	if err := query.Find(&estimates).Error; err != nil {
		return nil, err
	}
	return estimates, nil
}

// Save creates or updates an estimate
func (r *GormEstimateRepository) Save(ctx context.Context, estimate *billing.Estimate) error {
	return r.db.WithContext(ctx).Save(estimate).Error
}

// SaveWithLock saves with optimistic locking on the version column
func (r *GormEstimateRepository) SaveWithLock(ctx context.Context, estimate *billing.Estimate) error {
	result := r.db.WithContext(ctx).
		Model(&billing.Estimate{}).
		Where("account_id = ? AND id = ? AND version = ?", estimate.AccountID, estimate.ID, estimate.Version).
		Updates(map[string]interface{}{
			"client_id":     estimate.ClientID,
			"title":         estimate.Title,
			"description":   estimate.Description,
			"amount":        estimate.Amount,
			"estimate_date": estimate.EstimateDate,
			"status":        estimate.Status,
			"converted_at":  estimate.ConvertedAt,
			"updated_at":    estimate.UpdatedAt,
			"version":       estimate.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	estimate.IncrementVersion()
	return nil
}

// DeleteForAccount deletes an estimate for an account
func (r *GormEstimateRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&billing.Estimate{}, "account_id = ? AND id = ?", accountID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForAccount counts estimates for an account
func (r *GormEstimateRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&billing.Estimate{}).Where("account_id = ?", accountID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByClient counts estimates referencing a client
func (r *GormEstimateRepository) CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Estimate{}).
		Where("account_id = ? AND client_id = ?", accountID, clientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormEstimateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, EstimateSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormEstimateRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ?", pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

var _ billing.EstimateRepository = (*GormEstimateRepository)(nil)
