package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/shift-roster-api/internal/constants"
	"github.com/yukikurage/shift-roster-api/internal/dto"
	apierrors "github.com/yukikurage/shift-roster-api/internal/errors"
	"github.com/yukikurage/shift-roster-api/internal/middleware"
	"github.com/yukikurage/shift-roster-api/internal/services"
	"github.com/yukikurage/shift-roster-api/internal/utils"
)

// ClockLogHandler serves attendance history.
type ClockLogHandler struct {
	clockLogService *services.ClockLogService
}

// NewClockLogHandler creates a new ClockLogHandler.
func NewClockLogHandler(clockLogService *services.ClockLogService) *ClockLogHandler {
	return &ClockLogHandler{clockLogService: clockLogService}
}

// ListMyClockLogs returns a page of the caller's clock logs.
func (h *ClockLogHandler) ListMyClockLogs(c *gin.Context) {
	page := utils.ParsePageRequest(c, constants.ClockLogPageSize, constants.MaxClockLogPageSize)

	logs, total, err := h.clockLogService.ListMine(c.Request.Context(), middleware.GetPrincipal(c), page)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClockLogListResponse(logs, page, total))
}
