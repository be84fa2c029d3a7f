// Package breakpolicy computes the unpaid break allowance of a shift.
package breakpolicy

import "time"

const (
	// ThresholdHours is the span a shift must strictly exceed to earn a break.
	ThresholdHours = 6.0
	// BreakMinutes is the allowance granted above the threshold.
	BreakMinutes = 30
)

// Minutes returns the break allowance for a shift running from start to end.
// Callers validate that end is after start.
func Minutes(start, end time.Time) int {
	if end.Sub(start).Hours() > ThresholdHours {
		return BreakMinutes
	}
	return 0
}

// PaidHours is the scheduled span minus the break, never negative.
func PaidHours(start, end time.Time, breakMinutes int) float64 {
	paid := end.Sub(start) - time.Duration(breakMinutes)*time.Minute
	if paid < 0 {
		return 0
	}
	return paid.Hours()
}
