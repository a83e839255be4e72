// Package countdown computes the fixed deadline and classifies how much
// time remains into urgency tiers. Everything here is pure — no clocks,
// no side effects — so callers pass "now" in explicitly.
package countdown

import "time"

// Deadline month/day/time constants. The deadline is always
// Nov 30 23:59:59 local time.
const (
	deadlineMonth  = time.November
	deadlineDay    = 30
	deadlineHour   = 23
	deadlineMinute = 59
	deadlineSecond = 59
)

// NextDeadline returns Nov 30 23:59:59 of now's year, or of the following
// year if that instant has already passed. Computed once at startup and
// immutable for the process lifetime.
func NextDeadline(now time.Time) time.Time {
	d := time.Date(now.Year(), deadlineMonth, deadlineDay,
		deadlineHour, deadlineMinute, deadlineSecond, 0, now.Location())
	if now.After(d) {
		d = time.Date(now.Year()+1, deadlineMonth, deadlineDay,
			deadlineHour, deadlineMinute, deadlineSecond, 0, now.Location())
	}
	return d
}
