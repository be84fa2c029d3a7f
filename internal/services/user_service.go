package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/constants"
	"github.com/yukikurage/shift-roster-api/internal/models"
	"github.com/yukikurage/shift-roster-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles account administration.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListStaff lists accounts that can be scheduled.
func (s *UserService) ListStaff(ctx context.Context, p *auth.Principal) ([]models.User, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx, repository.UserFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return users, nil
}

// List lists every account, including soft-deleted ones.
func (s *UserService) List(ctx context.Context, p *auth.Principal) ([]models.User, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns one account. Staff may only read their own.
func (s *UserService) Get(ctx context.Context, p *auth.Principal, id uint64) (*models.User, error) {
	if err := auth.Authorize(p, auth.RequireSelfOrAdmin(id)); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return user, nil
}

// CreateUserInput represents an account created by an administrator.
type CreateUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	HourlyWage *float64
}

// Create adds an account. Role defaults to STAFF and wage to zero.
func (s *UserService) Create(ctx context.Context, p *auth.Principal, input CreateUserInput) (*models.User, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperror.MissingFields(missing...)
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, apperror.Validation(fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	}

	role := models.RoleStaff
	if input.Role != "" {
		parsed, ok := models.ParseRole(input.Role)
		if !ok {
			return nil, apperror.Validation("invalid role")
		}
		role = parsed
	}

	var wage float64
	if input.HourlyWage != nil {
		if *input.HourlyWage < 0 {
			return nil, apperror.Validation("hourly_wage must not be negative")
		}
		wage = *input.HourlyWage
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		HourlyWage:   wage,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Uint64("user_id", user.ID).Uint64("created_by", p.ID).Msg("User created")
	return user, nil
}

// UpdateUserInput holds the optional fields of a user update.
type UpdateUserInput struct {
	Name       *string
	Email      *string
	Role       *string
	HourlyWage *float64
}

// Update changes an account. Role and hourly wage are only applied for
// administrators; a staff member supplying them alone has nothing to update.
func (s *UserService) Update(ctx context.Context, p *auth.Principal, id uint64, input UpdateUserInput) (*models.User, error) {
	if err := auth.Authorize(p, auth.RequireSelfOrAdmin(id)); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}

	changed := false
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			user.Name = name
			changed = true
		}
	}
	if input.Email != nil {
		if email := normalizeEmail(*input.Email); email != "" && email != user.Email {
			existing, err := s.userRepo.FindByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return nil, apperror.Conflict("user with this email already exists")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
			changed = true
		} else if email != "" {
			changed = true
		}
	}
	if p.IsAdmin() {
		if input.Role != nil && *input.Role != "" {
			role, ok := models.ParseRole(*input.Role)
			if !ok {
				return nil, apperror.Validation("invalid role")
			}
			user.Role = role
			changed = true
		}
		if input.HourlyWage != nil {
			if *input.HourlyWage < 0 {
				return nil, apperror.Validation("hourly_wage must not be negative")
			}
			user.HourlyWage = *input.HourlyWage
			changed = true
		}
	}
	if !changed {
		return nil, apperror.Validation("no valid fields to update")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("user with this email already exists")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete soft-deletes an account. Its shifts and clock logs are kept.
func (s *UserService) Delete(ctx context.Context, p *auth.Principal, id uint64) error {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return err
	}
	if err := s.userRepo.SoftDelete(ctx, id); err != nil {
		return notFoundOr(err, "user not found")
	}

	log.Info().Uint64("user_id", id).Uint64("deleted_by", p.ID).Msg("User deleted")
	return nil
}
