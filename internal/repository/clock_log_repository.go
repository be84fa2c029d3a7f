package repository

import (
	"context"

	"github.com/yukikurage/shift-roster-api/internal/database"
	"github.com/yukikurage/shift-roster-api/internal/models"
	"github.com/yukikurage/shift-roster-api/internal/utils"
	"gorm.io/gorm"
)

// GormClockLogRepository is a GORM implementation of ClockLogRepository
type GormClockLogRepository struct {
	db *gorm.DB
}

// NewClockLogRepository creates a new ClockLogRepository
func NewClockLogRepository(db *gorm.DB) ClockLogRepository {
	return &GormClockLogRepository{db: db}
}

// ListByStaff lists a staff member's clock logs, most recent first
func (r *GormClockLogRepository) ListByStaff(ctx context.Context, staffID uint64, page utils.PageRequest) ([]models.ClockLog, int64, error) {
	var logs []models.ClockLog

	query := r.db.WithContext(ctx).Model(&models.ClockLog{}).Where("staff_id = ?", staffID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Scopes(database.Page(page)).
		Preload("Shift").
		Order("clock_in DESC").
		Order("id DESC").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
