package dto

import (
	"time"

	"github.com/yukikurage/shift-roster-api/internal/models"
)

// RosterSummaryDTO is the roster reference embedded in shift responses
type RosterSummaryDTO struct {
	ID        uint64              `json:"id"`
	WeekStart time.Time           `json:"week_start"`
	Status    models.RosterStatus `json:"status"`
}

// RosterDTO represents a roster in API responses
type RosterDTO struct {
	ID          uint64              `json:"id"`
	WeekStart   time.Time           `json:"week_start"`
	Status      models.RosterStatus `json:"status"`
	CreatedByID uint64              `json:"created_by_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CreatedBy   *UserDTO            `json:"created_by,omitempty"`
	Shifts      []ShiftDTO          `json:"shifts"`
}

// RosterListItemDTO represents a roster in list responses
type RosterListItemDTO struct {
	ID          uint64              `json:"id"`
	WeekStart   time.Time           `json:"week_start"`
	Status      models.RosterStatus `json:"status"`
	CreatedByID uint64              `json:"created_by_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CreatedBy   *UserDTO            `json:"created_by,omitempty"`
	ShiftCount  int64               `json:"shift_count"`
}

// ToRosterSummaryDTO converts a Roster model to RosterSummaryDTO
func ToRosterSummaryDTO(roster models.Roster) RosterSummaryDTO {
	return RosterSummaryDTO{
		ID:        roster.ID,
		WeekStart: roster.WeekStart,
		Status:    roster.Status,
	}
}

// ToRosterDTO converts a Roster model to RosterDTO
func ToRosterDTO(roster models.Roster) RosterDTO {
	dto := RosterDTO{
		ID:          roster.ID,
		WeekStart:   roster.WeekStart,
		Status:      roster.Status,
		CreatedByID: roster.CreatedByID,
		CreatedAt:   roster.CreatedAt,
		UpdatedAt:   roster.UpdatedAt,
		Shifts:      ToShiftDTOs(roster.Shifts),
	}

	// Include creator if preloaded
	if roster.CreatedBy.ID != 0 {
		creator := ToUserDTO(roster.CreatedBy)
		dto.CreatedBy = &creator
	}

	return dto
}

// ToRosterDTOs converts rosters to RosterDTOs
func ToRosterDTOs(rosters []models.Roster) []RosterDTO {
	out := make([]RosterDTO, len(rosters))
	for i, r := range rosters {
		out[i] = ToRosterDTO(r)
	}
	return out
}

// ToRosterListItemDTO converts a roster and its shift count to RosterListItemDTO
func ToRosterListItemDTO(roster models.Roster, shiftCount int64) RosterListItemDTO {
	dto := RosterListItemDTO{
		ID:          roster.ID,
		WeekStart:   roster.WeekStart,
		Status:      roster.Status,
		CreatedByID: roster.CreatedByID,
		CreatedAt:   roster.CreatedAt,
		UpdatedAt:   roster.UpdatedAt,
		ShiftCount:  shiftCount,
	}
	if roster.CreatedBy.ID != 0 {
		creator := ToUserDTO(roster.CreatedBy)
		dto.CreatedBy = &creator
	}
	return dto
}
