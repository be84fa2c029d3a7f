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

var errInvalidCredentials = apperror.Unauthorized("invalid email or password")

// AuthService handles registration, login and token resolution.
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      *auth.TokenIssuer
	emailDomain string
}

// NewAuthService creates a new AuthService. An empty emailDomain accepts any
// address at registration.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, emailDomain string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		emailDomain: strings.ToLower(strings.TrimPrefix(strings.TrimSpace(emailDomain), "@")),
	}
}

// RegisterInput represents the information required to self-register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a staff account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
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
	if s.emailDomain != "" && !strings.HasSuffix(email, "@"+s.emailDomain) {
		return nil, apperror.Validation("email must belong to the restaurant domain")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("email already registered")
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
		Role:         models.RoleStaff,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Uint64("user_id", user.ID).Msg("User registered")
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Deleted || !auth.CheckPassword(user.PasswordHash, input.Password) {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Authenticate resolves a token to the principal of a live account. The role
// is taken from the stored user so role changes apply immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.Deleted {
		return nil, apperror.Unauthorized("user no longer exists")
	}

	return &auth.Principal{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, p *auth.Principal) (*models.User, error) {
	if err := auth.Authorize(p, auth.RequireAuthenticated()); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
