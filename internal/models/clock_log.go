package models

import "time"

// ClockLog is written by the attendance terminal; this service only reads it.
type ClockLog struct {
	ID       uint64     `gorm:"primarykey" json:"id"`
	StaffID  uint64     `gorm:"not null" json:"staff_id"`
	ShiftID  *uint64    `json:"shift_id"`
	ClockIn  time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`

	// Relations
	Staff User   `gorm:"foreignKey:StaffID" json:"-"`
	Shift *Shift `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
}

// WorkedMinutes is the span between clock-in and clock-out, or nil while the
// log is still open.
func (l ClockLog) WorkedMinutes() *int {
	if l.ClockOut == nil || l.ClockOut.Before(l.ClockIn) {
		return nil
	}
	minutes := int(l.ClockOut.Sub(l.ClockIn).Minutes())
	return &minutes
}
