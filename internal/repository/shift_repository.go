package repository

import (
	"context"
	"time"

	"github.com/yukikurage/shift-roster-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShiftRepository is a GORM implementation of ShiftRepository
type GormShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new ShiftRepository
func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &GormShiftRepository{db: db}
}

// Create creates a new shift
func (r *GormShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(shift).Error
}

// FindByID finds a shift by ID with optional preloading
func (r *GormShiftRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Shift, error) {
	var shift models.Shift
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&shift, id).Error; err != nil {
		return nil, err
	}

	return &shift, nil
}

// ListByRoster lists a roster's shifts by start time
func (r *GormShiftRepository) ListByRoster(ctx context.Context, rosterID uint64) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where("roster_id = ?", rosterID).
		Preload("Staff").
		Order("start_time ASC").
		Order("id ASC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// ListUpcomingForStaff lists a staff member's shifts starting at or after from
func (r *GormShiftRepository) ListUpcomingForStaff(ctx context.Context, staffID uint64, from time.Time) ([]models.Shift, error) {
	var shifts []models.Shift
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND start_time >= ?", staffID, from).
		Preload("Roster").
		Order("start_time ASC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

// CountByRoster counts the shifts of a roster
func (r *GormShiftRepository) CountByRoster(ctx context.Context, rosterID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Shift{}).
		Where("roster_id = ?", rosterID).
		Count(&count).Error
	return count, err
}

// Update updates a shift
func (r *GormShiftRepository) Update(ctx context.Context, shift *models.Shift) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(shift).Error
}

// Delete deletes a shift and detaches its clock logs
func (r *GormShiftRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ClockLog{}).
			Where("shift_id = ?", id).
			Update("shift_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Shift{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
