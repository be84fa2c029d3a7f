package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/shift-roster-api/internal/apperror"
)

func respondWith(t *testing.T, err error) (*httptest.ResponseRecorder, APIError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespond_MapsKinds(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.Unauthorized("invalid token"), http.StatusUnauthorized, ErrCodeUnauthorized},
		{apperror.Forbidden("admins only"), http.StatusForbidden, ErrCodeForbidden},
		{apperror.Validation("invalid status value"), http.StatusBadRequest, ErrCodeValidation},
		{apperror.Conflict("roster exists for week"), http.StatusConflict, ErrCodeConflict},
		{fmt.Errorf("wrapped: %w", apperror.NotFound("shift not found")), http.StatusNotFound, ErrCodeNotFound},
		{apperror.TooManyRequests("Too many requests"), http.StatusTooManyRequests, ErrCodeTooMany},
	}

	for _, tt := range tests {
		w, body := respondWith(t, tt.err)
		assert.Equal(t, tt.status, w.Code)
		assert.Equal(t, tt.code, body.Code)
	}
}

func TestRespond_HidesInternalErrors(t *testing.T) {
	w, body := respondWith(t, fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrCodeInternalError, body.Code)
	assert.NotContains(t, body.Message, "10.0.0.5")
}

func TestRespond_IncludesFieldDetails(t *testing.T) {
	w, body := respondWith(t, apperror.MissingFields("staff_id", "date"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	details, ok := body.Details.(map[string]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"staff_id", "date"}, details["fields"])
}
