package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := Conflict("roster exists for week")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "roster exists for week", err.Error())
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create shift: %w", NotFound("roster not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("connection refused")))
}

func TestMissingFieldsMessage(t *testing.T) {
	err := MissingFields("staff_id", "end_time")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, []string{"staff_id", "end_time"}, err.Fields)
	assert.Equal(t, "missing required fields: staff_id, end_time", err.Error())
}
