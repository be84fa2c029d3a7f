package dto

import (
	"time"

	"github.com/yukikurage/shift-roster-api/internal/models"
	"github.com/yukikurage/shift-roster-api/internal/utils"
)

// ClockLogDTO represents a clock log in API responses
type ClockLogDTO struct {
	ID            uint64           `json:"id"`
	StaffID       uint64           `json:"staff_id"`
	ShiftID       *uint64          `json:"shift_id"`
	ClockIn       time.Time        `json:"clock_in"`
	ClockOut      *time.Time       `json:"clock_out"`
	WorkedMinutes *int             `json:"worked_minutes"`
	Shift         *ShiftSummaryDTO `json:"shift"`
}

// ClockLogListResponse represents a paginated list of clock logs
type ClockLogListResponse struct {
	ClockLogs  []ClockLogDTO  `json:"clock_logs"`
	Pagination utils.PageInfo `json:"pagination"`
}

// ToClockLogDTO converts a ClockLog model to ClockLogDTO
func ToClockLogDTO(log models.ClockLog) ClockLogDTO {
	dto := ClockLogDTO{
		ID:            log.ID,
		StaffID:       log.StaffID,
		ShiftID:       log.ShiftID,
		ClockIn:       log.ClockIn,
		ClockOut:      log.ClockOut,
		WorkedMinutes: log.WorkedMinutes(),
	}
	if log.Shift != nil {
		dto.Shift = &ShiftSummaryDTO{
			ID:        log.Shift.ID,
			Date:      log.Shift.Date,
			StartTime: log.Shift.StartTime,
			EndTime:   log.Shift.EndTime,
			Role:      log.Shift.Role,
		}
	}
	return dto
}

// ToClockLogListResponse converts a page of clock logs to ClockLogListResponse
func ToClockLogListResponse(logs []models.ClockLog, page utils.PageRequest, total int64) ClockLogListResponse {
	items := make([]ClockLogDTO, len(logs))
	for i, l := range logs {
		items[i] = ToClockLogDTO(l)
	}
	return ClockLogListResponse{
		ClockLogs:  items,
		Pagination: utils.NewPageInfo(page, total),
	}
}
