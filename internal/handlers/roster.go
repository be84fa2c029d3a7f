package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/shift-roster-api/internal/dto"
	apierrors "github.com/yukikurage/shift-roster-api/internal/errors"
	"github.com/yukikurage/shift-roster-api/internal/middleware"
	"github.com/yukikurage/shift-roster-api/internal/services"
)

// RosterHandler serves roster lifecycle endpoints.
type RosterHandler struct {
	rosterService *services.RosterService
	shiftService  *services.ShiftService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService *services.RosterService, shiftService *services.ShiftService) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		shiftService:  shiftService,
	}
}

// CreateRoster opens a roster for a week.
func (h *RosterHandler) CreateRoster(c *gin.Context) {
	type CreateRosterRequest struct {
		WeekStart *dto.Timestamp `json:"week_start"`
		Status    string         `json:"status"`
	}

	var req CreateRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	roster, err := h.rosterService.Create(c.Request.Context(), middleware.GetPrincipal(c), services.CreateRosterInput{
		WeekStart: dto.TimePtr(req.WeekStart),
		Status:    req.Status,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"roster": dto.ToRosterDTO(*roster)})
}

// ListRosters lists all rosters with their shift counts.
func (h *RosterHandler) ListRosters(c *gin.Context) {
	items, err := h.rosterService.List(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	rosters := make([]dto.RosterListItemDTO, len(items))
	for i, item := range items {
		rosters[i] = dto.ToRosterListItemDTO(item.Roster, item.ShiftCount)
	}
	c.JSON(http.StatusOK, gin.H{"rosters": rosters})
}

// ListMyRosters lists the published rosters the caller works in.
func (h *RosterHandler) ListMyRosters(c *gin.Context) {
	rosters, err := h.rosterService.ListMine(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rosters": dto.ToRosterDTOs(rosters)})
}

// GetRoster returns a roster with its shifts.
func (h *RosterHandler) GetRoster(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	roster, err := h.rosterService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roster": dto.ToRosterDTO(*roster)})
}

// UpdateRoster changes a roster's status or week.
func (h *RosterHandler) UpdateRoster(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	type UpdateRosterRequest struct {
		Status    *string        `json:"status"`
		WeekStart *dto.Timestamp `json:"week_start"`
	}

	var req UpdateRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	roster, err := h.rosterService.Update(c.Request.Context(), middleware.GetPrincipal(c), id, services.UpdateRosterInput{
		Status:    req.Status,
		WeekStart: dto.TimePtr(req.WeekStart),
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roster": dto.ToRosterDTO(*roster)})
}

// DeleteRoster removes a roster and its shifts.
func (h *RosterHandler) DeleteRoster(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.rosterService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Roster deleted successfully", "id": id})
}

// CopyRoster duplicates a roster into the following week.
func (h *RosterHandler) CopyRoster(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	roster, err := h.rosterService.Copy(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"roster": dto.ToRosterDTO(*roster)})
}

// ListRosterShifts lists a roster's shifts.
func (h *RosterHandler) ListRosterShifts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	shifts, err := h.shiftService.ListForRoster(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": dto.ToShiftDTOs(shifts)})
}

// CreateRosterShift adds a shift to the roster named in the path.
func (h *RosterHandler) CreateRosterShift(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	type CreateShiftRequest struct {
		StaffID   *uint64        `json:"staff_id"`
		Date      *dto.Timestamp `json:"date"`
		StartTime *dto.Timestamp `json:"start_time"`
		EndTime   *dto.Timestamp `json:"end_time"`
		Role      string         `json:"role"`
		Notes     *string        `json:"notes"`
	}

	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	shift, err := h.shiftService.Create(c.Request.Context(), middleware.GetPrincipal(c), services.CreateShiftInput{
		RosterID:  &id,
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
	c.JSON(http.StatusCreated, gin.H{"shift": dto.ToShiftDTO(*shift)})
}

// ExportRoster streams the roster as an XLSX workbook.
func (h *RosterHandler) ExportRoster(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	export, err := h.rosterService.Export(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, services.XLSXContentType, export.Data)
}
