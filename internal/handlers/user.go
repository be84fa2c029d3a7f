package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/shift-roster-api/internal/dto"
	apierrors "github.com/yukikurage/shift-roster-api/internal/errors"
	"github.com/yukikurage/shift-roster-api/internal/middleware"
	"github.com/yukikurage/shift-roster-api/internal/services"
)

// UserHandler serves account administration.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListStaff lists active accounts available for scheduling.
func (h *UserHandler) ListStaff(c *gin.Context) {
	users, err := h.userService.ListStaff(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": dto.ToUserDTOs(users)})
}

// ListUsers lists every account.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

// GetUser returns one account.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDetailDTO(*user)})
}

// CreateUser adds an account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name       string   `json:"name"`
		Email      string   `json:"email"`
		Password   string   `json:"password"`
		Role       string   `json:"role"`
		HourlyWage *float64 `json:"hourly_wage"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), middleware.GetPrincipal(c), services.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		HourlyWage: req.HourlyWage,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": dto.ToUserDetailDTO(*user)})
}

// UpdateUser changes an account.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Name       *string  `json:"name"`
		Email      *string  `json:"email"`
		Role       *string  `json:"role"`
		HourlyWage *float64 `json:"hourly_wage"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), middleware.GetPrincipal(c), id, services.UpdateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		HourlyWage: req.HourlyWage,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDetailDTO(*user)})
}

// DeleteUser soft-deletes an account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "id": id})
}
