package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/shift-roster-api/internal/dto"
	apierrors "github.com/yukikurage/shift-roster-api/internal/errors"
	"github.com/yukikurage/shift-roster-api/internal/middleware"
	"github.com/yukikurage/shift-roster-api/internal/services"
)

// ShiftHandler serves individual shifts and personal schedules.
type ShiftHandler struct {
	shiftService *services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(shiftService *services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// GetShift returns a shift.
func (h *ShiftHandler) GetShift(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	shift, err := h.shiftService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": dto.ToShiftDTO(*shift)})
}

// UpdateShift overwrites the supplied fields of a shift.
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	type UpdateShiftRequest struct {
		StaffID   *uint64        `json:"staff_id"`
		Date      *dto.Timestamp `json:"date"`
		StartTime *dto.Timestamp `json:"start_time"`
		EndTime   *dto.Timestamp `json:"end_time"`
		Role      *string        `json:"role"`
		Notes     *string        `json:"notes"`
	}

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	shift, err := h.shiftService.Update(c.Request.Context(), middleware.GetPrincipal(c), id, services.UpdateShiftInput{
		StaffID:   req.StaffID,
		Date:      dto.TimePtr(req.Date),
		StartTime: dto.TimePtr(req.StartTime),
		EndTime:   dto.TimePtr(req.EndTime),
		Role:      req.Role,
		Notes:     req.Notes,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": dto.ToShiftDTO(*shift)})
}

// DeleteShift removes a shift.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.shiftService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted successfully", "id": id})
}

// ListMyShifts lists the caller's upcoming shifts.
func (h *ShiftHandler) ListMyShifts(c *gin.Context) {
	shifts, err := h.shiftService.ListMyUpcoming(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": dto.ToShiftDTOs(shifts)})
}
