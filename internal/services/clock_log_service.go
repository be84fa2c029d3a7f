package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/models"
	"github.com/yukikurage/shift-roster-api/internal/repository"
	"github.com/yukikurage/shift-roster-api/internal/utils"
)

// ClockLogService exposes attendance history. Logs are recorded elsewhere.
type ClockLogService struct {
	clockLogRepo repository.ClockLogRepository
}

// NewClockLogService creates a new ClockLogService.
func NewClockLogService(clockLogRepo repository.ClockLogRepository) *ClockLogService {
	return &ClockLogService{clockLogRepo: clockLogRepo}
}

// ListMine returns a page of the caller's clock logs, most recent first, and
// the total number of logs.
func (s *ClockLogService) ListMine(ctx context.Context, p *auth.Principal, page utils.PageRequest) ([]models.ClockLog, int64, error) {
	if err := auth.Authorize(p, auth.RequireStaff()); err != nil {
		return nil, 0, err
	}
	logs, total, err := s.clockLogRepo.ListByStaff(ctx, p.ID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clock logs: %w", err)
	}
	return logs, total, nil
}
