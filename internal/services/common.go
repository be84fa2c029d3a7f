package services

import (
	"errors"
	"time"

	"github.com/yukikurage/shift-roster-api/internal/apperror"
	"gorm.io/gorm"
)

// notFoundOr maps a missing-row error to a NotFound error with message.
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(message)
	}
	return err
}

// instant normalizes a timestamp to UTC whole seconds.
func instant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// calendarDate is UTC midnight of the calendar day t names in its own zone.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
