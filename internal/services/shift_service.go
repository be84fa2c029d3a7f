package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/breakpolicy"
	"github.com/yukikurage/shift-roster-api/internal/models"
	"github.com/yukikurage/shift-roster-api/internal/repository"
)

var (
	errShiftNotFound = apperror.NotFound("shift not found")
	errStaffNotFound = apperror.NotFound("staff not found")
	errShiftOrder    = apperror.Validation("end_time must be after start_time")
)

// ShiftService handles shift scheduling.
type ShiftService struct {
	shiftRepo  repository.ShiftRepository
	rosterRepo repository.RosterRepository
	userRepo   repository.UserRepository
	now        func() time.Time
}

// NewShiftService creates a new ShiftService.
func NewShiftService(shiftRepo repository.ShiftRepository, rosterRepo repository.RosterRepository, userRepo repository.UserRepository) *ShiftService {
	return &ShiftService{
		shiftRepo:  shiftRepo,
		rosterRepo: rosterRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// CreateShiftInput represents a new shift. Pointer fields are required.
type CreateShiftInput struct {
	RosterID  *uint64
	StaffID   *uint64
	Date      *time.Time
	StartTime *time.Time
	EndTime   *time.Time
	Role      string
	Notes     *string
}

func (in CreateShiftInput) missing() []string {
	var fields []string
	if in.RosterID == nil || *in.RosterID == 0 {
		fields = append(fields, "roster_id")
	}
	if in.StaffID == nil || *in.StaffID == 0 {
		fields = append(fields, "staff_id")
	}
	if in.Date == nil || in.Date.IsZero() {
		fields = append(fields, "date")
	}
	if in.StartTime == nil || in.StartTime.IsZero() {
		fields = append(fields, "start_time")
	}
	if in.EndTime == nil || in.EndTime.IsZero() {
		fields = append(fields, "end_time")
	}
	return fields
}

// Create adds a shift to a roster. The break allowance is derived from the
// shift length.
func (s *ShiftService) Create(ctx context.Context, p *auth.Principal, input CreateShiftInput) (*models.Shift, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}
	if missing := input.missing(); len(missing) > 0 {
		return nil, apperror.MissingFields(missing...)
	}

	start, end := instant(*input.StartTime), instant(*input.EndTime)
	if !end.After(start) {
		return nil, errShiftOrder
	}

	if _, err := s.rosterRepo.FindByID(ctx, *input.RosterID); err != nil {
		return nil, notFoundOr(err, errRosterNotFound.Message)
	}
	if err := s.ensureStaff(ctx, *input.StaffID); err != nil {
		return nil, err
	}

	shift := &models.Shift{
		RosterID:     *input.RosterID,
		StaffID:      *input.StaffID,
		Date:         calendarDate(*input.Date),
		StartTime:    start,
		EndTime:      end,
		BreakMinutes: breakpolicy.Minutes(start, end),
		Role:         strings.TrimSpace(input.Role),
		Notes:        input.Notes,
	}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	return s.load(ctx, shift.ID)
}

// UpdateShiftInput holds the optional fields of a shift update.
type UpdateShiftInput struct {
	StaffID   *uint64
	Date      *time.Time
	StartTime *time.Time
	EndTime   *time.Time
	Role      *string
	Notes     *string
}

// Update overwrites the supplied fields. When either end of the shift moves
// the break allowance is recomputed from the resulting pair.
func (s *ShiftService) Update(ctx context.Context, p *auth.Principal, id uint64, input UpdateShiftInput) (*models.Shift, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}

	shift, err := s.shiftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, errShiftNotFound.Message)
	}

	if input.StaffID != nil && *input.StaffID != shift.StaffID {
		if err := s.ensureStaff(ctx, *input.StaffID); err != nil {
			return nil, err
		}
		shift.StaffID = *input.StaffID
	}
	if input.Date != nil && !input.Date.IsZero() {
		shift.Date = calendarDate(*input.Date)
	}
	if input.Role != nil {
		shift.Role = strings.TrimSpace(*input.Role)
	}
	if input.Notes != nil {
		shift.Notes = input.Notes
	}

	retimed := false
	if input.StartTime != nil && !input.StartTime.IsZero() {
		shift.StartTime = instant(*input.StartTime)
		retimed = true
	}
	if input.EndTime != nil && !input.EndTime.IsZero() {
		shift.EndTime = instant(*input.EndTime)
		retimed = true
	}
	if retimed {
		if !shift.EndTime.After(shift.StartTime) {
			return nil, errShiftOrder
		}
		shift.BreakMinutes = breakpolicy.Minutes(shift.StartTime, shift.EndTime)
	}

	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	return s.load(ctx, shift.ID)
}

// Delete removes a shift.
func (s *ShiftService) Delete(ctx context.Context, p *auth.Principal, id uint64) error {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return err
	}
	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, errShiftNotFound.Message)
	}
	return nil
}

// Get returns a shift. Staff may only read their own shifts.
func (s *ShiftService) Get(ctx context.Context, p *auth.Principal, id uint64) (*models.Shift, error) {
	if err := auth.Authorize(p, auth.RequireAuthenticated()); err != nil {
		return nil, err
	}

	shift, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(p, auth.RequireSelfOrAdmin(shift.StaffID)); err != nil {
		return nil, err
	}
	return shift, nil
}

// ListForRoster lists a roster's shifts by start time.
func (s *ShiftService) ListForRoster(ctx context.Context, p *auth.Principal, rosterID uint64) ([]models.Shift, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}
	if _, err := s.rosterRepo.FindByID(ctx, rosterID); err != nil {
		return nil, notFoundOr(err, errRosterNotFound.Message)
	}

	shifts, err := s.shiftRepo.ListByRoster(ctx, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

// ListMyUpcoming lists the caller's shifts that have not started yet.
func (s *ShiftService) ListMyUpcoming(ctx context.Context, p *auth.Principal) ([]models.Shift, error) {
	if err := auth.Authorize(p, auth.RequireStaff()); err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.ListUpcomingForStaff(ctx, p.ID, instant(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

func (s *ShiftService) load(ctx context.Context, id uint64) (*models.Shift, error) {
	shift, err := s.shiftRepo.FindByID(ctx, id, "Staff")
	if err != nil {
		return nil, notFoundOr(err, errShiftNotFound.Message)
	}
	return shift, nil
}

func (s *ShiftService) ensureStaff(ctx context.Context, staffID uint64) error {
	staff, err := s.userRepo.FindByID(ctx, staffID)
	if err != nil {
		return notFoundOr(err, errStaffNotFound.Message)
	}
	if staff.Deleted {
		return errStaffNotFound
	}
	return nil
}
