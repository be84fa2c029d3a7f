package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yukikurage/shift-roster-api/internal/apperror"
)

// Layouts accepted for request timestamps. Values without a zone are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a request time that also accepts bare calendar dates.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperror.Validation("timestamps must be strings")
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTimestamp parses raw using the accepted layouts.
func ParseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, apperror.Validation(fmt.Sprintf("invalid timestamp %q", raw))
}

// TimePtr unwraps an optional request timestamp.
func TimePtr(t *Timestamp) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
