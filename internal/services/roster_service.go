package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/models"
	"github.com/yukikurage/shift-roster-api/internal/repository"
	"gorm.io/gorm"
)

// Week is the offset between a roster and its copy.
const Week = 7 * 24 * time.Hour

var (
	errRosterExists   = apperror.Conflict("roster exists for week")
	errRosterNotFound = apperror.NotFound("roster not found")
	errEmptyPublish   = apperror.Validation("cannot approve a roster with no shifts")
	errInvalidStatus  = apperror.Validation("invalid status value")
)

// RosterService implements the roster lifecycle.
type RosterService struct {
	rosterRepo repository.RosterRepository
	shiftRepo  repository.ShiftRepository
}

// NewRosterService creates a new RosterService.
func NewRosterService(rosterRepo repository.RosterRepository, shiftRepo repository.ShiftRepository) *RosterService {
	return &RosterService{
		rosterRepo: rosterRepo,
		shiftRepo:  shiftRepo,
	}
}

// CreateRosterInput represents a new weekly roster.
type CreateRosterInput struct {
	WeekStart *time.Time
	Status    string
}

// Create opens a roster for a week. A new roster has no shifts, so it cannot
// start out published.
func (s *RosterService) Create(ctx context.Context, p *auth.Principal, input CreateRosterInput) (*models.Roster, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}
	if input.WeekStart == nil || input.WeekStart.IsZero() {
		return nil, apperror.MissingFields("week_start")
	}

	status := models.RosterStatusDraft
	if input.Status != "" {
		parsed, ok := models.ParseRosterStatus(input.Status)
		if !ok {
			return nil, errInvalidStatus
		}
		status = parsed
	}
	if status == models.RosterStatusPublished {
		return nil, errEmptyPublish
	}

	weekStart := calendarDate(*input.WeekStart)
	if err := s.ensureWeekFree(ctx, weekStart, 0); err != nil {
		return nil, err
	}

	roster := &models.Roster{
		WeekStart:   weekStart,
		Status:      status,
		CreatedByID: p.ID,
	}
	if err := s.rosterRepo.Create(ctx, roster); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errRosterExists
		}
		return nil, fmt.Errorf("failed to create roster: %w", err)
	}
	roster.Shifts = []models.Shift{}

	log.Info().
		Uint64("roster_id", roster.ID).
		Time("week_start", roster.WeekStart).
		Uint64("created_by", p.ID).
		Msg("Roster created")
	return roster, nil
}

// RosterListItem is a roster with the number of shifts it holds.
type RosterListItem struct {
	Roster     models.Roster
	ShiftCount int64
}

// List returns every roster, newest week first.
func (s *RosterService) List(ctx context.Context, p *auth.Principal) ([]RosterListItem, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}

	rosters, err := s.rosterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}

	ids := make([]uint64, len(rosters))
	for i, r := range rosters {
		ids[i] = r.ID
	}
	counts, err := s.rosterRepo.CountShifts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count shifts: %w", err)
	}

	items := make([]RosterListItem, len(rosters))
	for i, r := range rosters {
		items[i] = RosterListItem{Roster: r, ShiftCount: counts[r.ID]}
	}
	return items, nil
}

// Get returns a roster with its creator and shifts.
func (s *RosterService) Get(ctx context.Context, p *auth.Principal, id uint64) (*models.Roster, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// UpdateRosterInput holds the optional fields of a roster update.
type UpdateRosterInput struct {
	Status    *string
	WeekStart *time.Time
}

// Update changes a roster's status or week.
func (s *RosterService) Update(ctx context.Context, p *auth.Principal, id uint64, input UpdateRosterInput) (*models.Roster, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}

	roster, err := s.rosterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, errRosterNotFound.Message)
	}

	if input.Status != nil {
		status, ok := models.ParseRosterStatus(*input.Status)
		if !ok {
			return nil, errInvalidStatus
		}
		if status == models.RosterStatusPublished {
			count, err := s.shiftRepo.CountByRoster(ctx, roster.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count shifts: %w", err)
			}
			if count == 0 {
				return nil, errEmptyPublish
			}
		}
		roster.Status = status
	}

	if input.WeekStart != nil && !input.WeekStart.IsZero() {
		weekStart := calendarDate(*input.WeekStart)
		if !weekStart.Equal(roster.WeekStart) {
			if err := s.ensureWeekFree(ctx, weekStart, roster.ID); err != nil {
				return nil, err
			}
			roster.WeekStart = weekStart
		}
	}

	if err := s.rosterRepo.Update(ctx, roster); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errRosterExists
		}
		return nil, fmt.Errorf("failed to update roster: %w", err)
	}

	log.Info().
		Uint64("roster_id", roster.ID).
		Str("status", string(roster.Status)).
		Msg("Roster updated")
	return s.load(ctx, roster.ID)
}

// Delete removes a roster and all of its shifts.
func (s *RosterService) Delete(ctx context.Context, p *auth.Principal, id uint64) error {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return err
	}
	if err := s.rosterRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, errRosterNotFound.Message)
	}

	log.Info().Uint64("roster_id", id).Uint64("deleted_by", p.ID).Msg("Roster deleted")
	return nil
}

// Copy duplicates a roster into the following week as a draft. Every shift
// moves forward by exactly one week and keeps its staff, role, notes and break.
func (s *RosterService) Copy(ctx context.Context, p *auth.Principal, id uint64) (*models.Roster, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}

	source, err := s.rosterRepo.FindByID(ctx, id, "Shifts")
	if err != nil {
		return nil, notFoundOr(err, "source roster not found")
	}

	weekStart := source.WeekStart.Add(Week)
	if err := s.ensureWeekFree(ctx, weekStart, 0); err != nil {
		return nil, err
	}

	copied := &models.Roster{
		WeekStart:   weekStart,
		Status:      models.RosterStatusDraft,
		CreatedByID: p.ID,
	}
	shifts := make([]models.Shift, len(source.Shifts))
	for i, sh := range source.Shifts {
		shifts[i] = models.Shift{
			StaffID:      sh.StaffID,
			Date:         sh.Date.Add(Week),
			StartTime:    sh.StartTime.Add(Week),
			EndTime:      sh.EndTime.Add(Week),
			BreakMinutes: sh.BreakMinutes,
			Role:         sh.Role,
			Notes:        sh.Notes,
		}
	}

	if err := s.rosterRepo.CreateWithShifts(ctx, copied, shifts); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errRosterExists
		}
		return nil, fmt.Errorf("failed to copy roster: %w", err)
	}

	log.Info().
		Uint64("source_roster_id", source.ID).
		Uint64("roster_id", copied.ID).
		Int("shifts", len(shifts)).
		Msg("Roster copied")
	return s.load(ctx, copied.ID)
}

// ListMine lists published rosters in which the caller works, each holding
// only the caller's shifts.
func (s *RosterService) ListMine(ctx context.Context, p *auth.Principal) ([]models.Roster, error) {
	if err := auth.Authorize(p, auth.RequireStaff()); err != nil {
		return nil, err
	}
	rosters, err := s.rosterRepo.ListPublishedForStaff(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}
	return rosters, nil
}

func (s *RosterService) load(ctx context.Context, id uint64) (*models.Roster, error) {
	roster, err := s.rosterRepo.FindByID(ctx, id, "CreatedBy", "Shifts", "Shifts.Staff")
	if err != nil {
		return nil, notFoundOr(err, errRosterNotFound.Message)
	}
	return roster, nil
}

// ensureWeekFree fails with a conflict when a roster other than exceptID
// already covers weekStart.
func (s *RosterService) ensureWeekFree(ctx context.Context, weekStart time.Time, exceptID uint64) error {
	existing, err := s.rosterRepo.FindByWeekStart(ctx, weekStart)
	if err == nil && existing.ID != exceptID {
		return errRosterExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check week: %w", err)
	}
	return nil
}
