package repository

import (
	"context"
	"time"

	"github.com/yukikurage/shift-roster-api/internal/models"
	"github.com/yukikurage/shift-roster-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID, including soft-deleted users
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List lists users ordered by name
	List(ctx context.Context, filter UserFilter) ([]models.User, error)

	// Update updates a user
	Update(ctx context.Context, user *models.User) error

	// SoftDelete flags a user as deleted without removing the row
	SoftDelete(ctx context.Context, id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	ActiveOnly bool
}

// RosterRepository defines the interface for roster data access
type RosterRepository interface {
	// Create creates a new roster
	Create(ctx context.Context, roster *models.Roster) error

	// CreateWithShifts creates a roster and its shifts in one transaction
	CreateWithShifts(ctx context.Context, roster *models.Roster, shifts []models.Shift) error

	// FindByID finds a roster by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Roster, error)

	// FindByWeekStart finds the roster for a week
	FindByWeekStart(ctx context.Context, weekStart time.Time) (*models.Roster, error)

	// List lists all rosters, newest week first
	List(ctx context.Context) ([]models.Roster, error)

	// CountShifts counts shifts per roster for the given roster IDs
	CountShifts(ctx context.Context, rosterIDs []uint64) (map[uint64]int64, error)

	// ListPublishedForStaff lists published rosters holding at least one
	// shift of staffID, with only that staff member's shifts loaded
	ListPublishedForStaff(ctx context.Context, staffID uint64) ([]models.Roster, error)

	// Update updates a roster
	Update(ctx context.Context, roster *models.Roster) error

	// Delete deletes a roster and its shifts
	Delete(ctx context.Context, id uint64) error
}

// ShiftRepository defines the interface for shift data access
type ShiftRepository interface {
	// Create creates a new shift
	Create(ctx context.Context, shift *models.Shift) error

	// FindByID finds a shift by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Shift, error)

	// ListByRoster lists a roster's shifts by start time
	ListByRoster(ctx context.Context, rosterID uint64) ([]models.Shift, error)

	// ListUpcomingForStaff lists a staff member's shifts starting at or after from
	ListUpcomingForStaff(ctx context.Context, staffID uint64, from time.Time) ([]models.Shift, error)

	// CountByRoster counts the shifts of a roster
	CountByRoster(ctx context.Context, rosterID uint64) (int64, error)

	// Update updates a shift
	Update(ctx context.Context, shift *models.Shift) error

	// Delete deletes a shift
	Delete(ctx context.Context, id uint64) error
}

// ClockLogRepository defines the interface for clock log data access
type ClockLogRepository interface {
	// ListByStaff lists a staff member's clock logs, most recent first
	ListByStaff(ctx context.Context, staffID uint64, page utils.PageRequest) ([]models.ClockLog, int64, error)
}
