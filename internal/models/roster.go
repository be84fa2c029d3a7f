package models

import (
	"strings"
	"time"
)

type RosterStatus string

const (
	RosterStatusDraft     RosterStatus = "DRAFT"
	RosterStatusPublished RosterStatus = "PUBLISHED"
	RosterStatusArchived  RosterStatus = "ARCHIVED"
)

// RosterStatuses lists every accepted status value.
var RosterStatuses = []RosterStatus{
	RosterStatusDraft,
	RosterStatusPublished,
	RosterStatusArchived,
}

// ParseRosterStatus reports whether s names one of RosterStatuses.
func ParseRosterStatus(s string) (RosterStatus, bool) {
	candidate := RosterStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range RosterStatuses {
		if status == candidate {
			return status, true
		}
	}
	return "", false
}

type Roster struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	WeekStart   time.Time    `gorm:"uniqueIndex;not null" json:"week_start"`
	Status      RosterStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	CreatedByID uint64       `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	CreatedBy User    `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Shifts    []Shift `gorm:"foreignKey:RosterID" json:"shifts,omitempty"`
}
