package dto

import (
	"time"

	"github.com/yukikurage/shift-roster-api/internal/models"
)

// ShiftDTO represents a shift in API responses
type ShiftDTO struct {
	ID           uint64            `json:"id"`
	RosterID     uint64            `json:"roster_id"`
	StaffID      uint64            `json:"staff_id"`
	Date         time.Time         `json:"date"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	BreakMinutes int               `json:"break_minutes"`
	Role         string            `json:"role"`
	Notes        *string           `json:"notes"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Staff        *UserDTO          `json:"staff,omitempty"`
	Roster       *RosterSummaryDTO `json:"roster,omitempty"`
}

// ShiftSummaryDTO is the shift reference embedded in clock log responses
type ShiftSummaryDTO struct {
	ID        uint64    `json:"id"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Role      string    `json:"role"`
}

// ToShiftDTO converts a Shift model to ShiftDTO
func ToShiftDTO(shift models.Shift) ShiftDTO {
	dto := ShiftDTO{
		ID:           shift.ID,
		RosterID:     shift.RosterID,
		StaffID:      shift.StaffID,
		Date:         shift.Date,
		StartTime:    shift.StartTime,
		EndTime:      shift.EndTime,
		BreakMinutes: shift.BreakMinutes,
		Role:         shift.Role,
		Notes:        shift.Notes,
		CreatedAt:    shift.CreatedAt,
		UpdatedAt:    shift.UpdatedAt,
	}

	// Include staff if preloaded
	if shift.Staff.ID != 0 {
		staff := ToUserDTO(shift.Staff)
		dto.Staff = &staff
	}

	// Include roster if preloaded
	if shift.Roster.ID != 0 {
		roster := ToRosterSummaryDTO(shift.Roster)
		dto.Roster = &roster
	}

	return dto
}

// ToShiftDTOs converts shifts to ShiftDTOs
func ToShiftDTOs(shifts []models.Shift) []ShiftDTO {
	out := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		out[i] = ToShiftDTO(s)
	}
	return out
}
