package models

import "time"

type Shift struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	RosterID     uint64    `gorm:"not null" json:"roster_id"`
	StaffID      uint64    `gorm:"not null" json:"staff_id"`
	Date         time.Time `gorm:"not null" json:"date"`
	StartTime    time.Time `gorm:"not null" json:"start_time"`
	EndTime      time.Time `gorm:"not null" json:"end_time"`
	BreakMinutes int       `gorm:"not null;default:0" json:"break_minutes"`
	Role         string    `gorm:"type:varchar(100)" json:"role"`
	Notes        *string   `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Roster Roster `gorm:"foreignKey:RosterID" json:"roster,omitempty"`
	Staff  User   `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// Duration is the scheduled span including the break.
func (s Shift) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
