package persistence

import (
	"context"
	"errors"

	"github.com/billfold/backend/internal/domain/scheduling"
	"github.com/billfold/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAppointmentRepository implements AppointmentRepository using GORM
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// FindByID finds an appointment by its ID
func (r *GormAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	var appointment scheduling.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// FindByIDForAccount finds an appointment by ID within an account
func (r *GormAppointmentRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*scheduling.Appointment, error) {
	var appointment scheduling.Appointment
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// FindAllForAccount finds all appointments for an account
func (r *GormAppointmentRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]scheduling.Appointment, error) {
	var appointments []scheduling.Appointment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&scheduling.Appointment{}).Where("account_id = ?", accountID), filter)
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// Save creates or updates an appointment
func (r *GormAppointmentRepository) Save(ctx context.Context, appointment *scheduling.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// SaveWithLock saves with optimistic locking on the version column
func (r *GormAppointmentRepository) SaveWithLock(ctx context.Context, appointment *scheduling.Appointment) error {
	result := r.db.WithContext(ctx).
		Model(&scheduling.Appointment{}).
		Where("account_id = ? AND id = ? AND version = ?", appointment.AccountID, appointment.ID, appointment.Version).
		Updates(map[string]interface{}{
			"client_id":        appointment.ClientID,
			"title":            appointment.Title,
			"notes":            appointment.Notes,
			"appointment_date": appointment.AppointmentDate,
			"duration_minutes": appointment.DurationMinutes,
			"status":           appointment.Status,
			"updated_at":       appointment.UpdatedAt,
			"version":          appointment.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	appointment.IncrementVersion()
	return nil
}

// DeleteForAccount deletes an appointment for an account
func (r *GormAppointmentRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&scheduling.Appointment{}, "account_id = ? AND id = ?", accountID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForAccount counts appointments for an account
func (r *GormAppointmentRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&scheduling.Appointment{}).Where("account_id = ?", accountID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByClient counts appointments referencing a client
func (r *GormAppointmentRepository) CountByClient(ctx context.Context, accountID, clientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&scheduling.Appointment{}).
		Where("account_id = ? AND client_id = ?", accountID, clientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAppointmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AppointmentSortFields, "appointment_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormAppointmentRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		case "appointment_date_from":
			query = query.Where("appointment_date >= ?", value)
		case "appointment_date_to":
			query = query.Where("appointment_date <= ?", value)
		}
	}
	return query
}

var _ scheduling.AppointmentRepository = (*GormAppointmentRepository)(nil)
