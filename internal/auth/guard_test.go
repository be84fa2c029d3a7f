package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"github.com/yukikurage/shift-roster-api/internal/models"
)

func TestAuthorize(t *testing.T) {
	admin := &Principal{ID: 1, Role: models.RoleAdmin}
	staff := &Principal{ID: 2, Role: models.RoleStaff}

	tests := []struct {
		name      string
		principal *Principal
		predicate Predicate
		want      error
	}{
		{"admin passes admin gate", admin, RequireAdmin(), nil},
		{"staff fails admin gate", staff, RequireAdmin(), apperror.ErrForbidden},
		{"staff passes staff gate", staff, RequireStaff(), nil},
		{"admin fails staff gate", admin, RequireStaff(), apperror.ErrForbidden},
		{"staff reads self", staff, RequireSelfOrAdmin(2), nil},
		{"staff reads other", staff, RequireSelfOrAdmin(3), apperror.ErrForbidden},
		{"admin reads anyone", admin, RequireSelfOrAdmin(3), nil},
		{"anonymous", nil, RequireAdmin(), apperror.ErrUnauthorized},
		{"any principal", staff, RequireAuthenticated(), nil},
		{"anonymous any principal", nil, RequireAuthenticated(), apperror.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.principal, tt.predicate)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("staff123")
	assert.NoError(t, err)

	assert.True(t, CheckPassword(hash, "staff123"))
	assert.False(t, CheckPassword(hash, "admin123"))
}
