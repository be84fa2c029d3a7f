package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"github.com/yukikurage/shift-roster-api/internal/models"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	user := &models.User{ID: 42, Email: "chef@bistro.example", Role: models.RoleStaff}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	principal, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, &Principal{ID: 42, Email: "chef@bistro.example", Role: models.RoleStaff}, principal)
}

func TestTokenIssuer_RejectsForeignSignature(t *testing.T) {
	token, err := NewTokenIssuer("other-secret", time.Hour).Issue(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret", time.Hour).Verify(token)
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	require.Error(t, err)
	assert.Equal(t, "token expired", err.Error())
}

func TestTokenIssuer_RejectsUnknownRole(t *testing.T) {
	claims := &Claims{
		UserID: 7,
		Role:   models.Role("OWNER"),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret", time.Hour).Verify(token)
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("test-secret", time.Hour).Verify("not-a-token")
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}
