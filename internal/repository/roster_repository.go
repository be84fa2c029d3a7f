package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/shift-roster-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCreateRoster is returned when inserting the roster fails inside a copy transaction.
	ErrCreateRoster = errors.New("roster repository: create roster failed")
	// ErrCreateShifts is returned when inserting the cloned shifts fails inside a copy transaction.
	ErrCreateShifts = errors.New("roster repository: create shifts failed")
)

// GormRosterRepository is a GORM implementation of RosterRepository
type GormRosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a new RosterRepository
func NewRosterRepository(db *gorm.DB) RosterRepository {
	return &GormRosterRepository{db: db}
}

// Create creates a new roster
func (r *GormRosterRepository) Create(ctx context.Context, roster *models.Roster) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(roster).Error
}

// CreateWithShifts creates a roster and its shifts atomically.
func (r *GormRosterRepository) CreateWithShifts(ctx context.Context, roster *models.Roster, shifts []models.Shift) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(roster).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateRoster, err)
		}
		if len(shifts) == 0 {
			return nil
		}

		for i := range shifts {
			shifts[i].RosterID = roster.ID
		}
		if err := tx.Omit(clause.Associations).Create(&shifts).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateShifts, err)
		}
		roster.Shifts = shifts

		return nil
	})
}

// FindByID finds a roster by ID with optional preloading
func (r *GormRosterRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Roster, error) {
	var roster models.Roster
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		if p == "Shifts" {
			query = query.Preload("Shifts", func(db *gorm.DB) *gorm.DB {
				return db.Order("shifts.start_time ASC").Order("shifts.id ASC")
			})
			continue
		}
		query = query.Preload(p)
	}

	if err := query.First(&roster, id).Error; err != nil {
		return nil, err
	}

	return &roster, nil
}

// FindByWeekStart finds the roster for a week
func (r *GormRosterRepository) FindByWeekStart(ctx context.Context, weekStart time.Time) (*models.Roster, error) {
	var roster models.Roster
	if err := r.db.WithContext(ctx).Where("week_start = ?", weekStart).First(&roster).Error; err != nil {
		return nil, err
	}
	return &roster, nil
}

// List lists all rosters, newest week first
func (r *GormRosterRepository) List(ctx context.Context) ([]models.Roster, error) {
	var rosters []models.Roster
	if err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Order("week_start DESC").
		Find(&rosters).Error; err != nil {
		return nil, err
	}
	return rosters, nil
}

// CountShifts counts shifts per roster
func (r *GormRosterRepository) CountShifts(ctx context.Context, rosterIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(rosterIDs))
	if len(rosterIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		RosterID uint64
		Count    int64
	}
	if err := r.db.WithContext(ctx).Model(&models.Shift{}).
		Select("roster_id, COUNT(*) AS count").
		Where("roster_id IN ?", rosterIDs).
		Group("roster_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.RosterID] = row.Count
	}
	return counts, nil
}

// ListPublishedForStaff lists published rosters holding a shift of staffID
func (r *GormRosterRepository) ListPublishedForStaff(ctx context.Context, staffID uint64) ([]models.Roster, error) {
	var rosters []models.Roster

	db := r.db.WithContext(ctx)
	shiftSubQuery := db.Model(&models.Shift{}).
		Select("1").
		Where("shifts.roster_id = rosters.id").
		Where("shifts.staff_id = ?", staffID)

	err := db.Model(&models.Roster{}).
		Where("rosters.status = ?", models.RosterStatusPublished).
		Where("EXISTS (?)", shiftSubQuery).
		Preload("Shifts", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("staff_id = ?", staffID).Order("shifts.start_time ASC")
		}).
		Preload("Shifts.Staff").
		Order("rosters.week_start DESC").
		Find(&rosters).Error
	if err != nil {
		return nil, err
	}
	return rosters, nil
}

// Update updates a roster
func (r *GormRosterRepository) Update(ctx context.Context, roster *models.Roster) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(roster).Error
}

// Delete removes a roster and its shifts. Clock logs that referenced those
// shifts are kept and detached.
func (r *GormRosterRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shiftIDs := tx.Model(&models.Shift{}).Select("id").Where("roster_id = ?", id)
		if err := tx.Model(&models.ClockLog{}).
			Where("shift_id IN (?)", shiftIDs).
			Update("shift_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("roster_id = ?", id).Delete(&models.Shift{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Roster{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
