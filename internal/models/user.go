package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// ParseRole returns the canonical role for s, accepting any letter case.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStaff:
		return RoleStaff, true
	}
	return "", false
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'STAFF'" json:"role"`
	HourlyWage   float64   `gorm:"not null;default:0" json:"hourly_wage"`
	Deleted      bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Shifts         []Shift    `gorm:"foreignKey:StaffID" json:"-"`
	ClockLogs      []ClockLog `gorm:"foreignKey:StaffID" json:"-"`
	CreatedRosters []Roster   `gorm:"foreignKey:CreatedByID" json:"-"`
}
