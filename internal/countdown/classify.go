package countdown

import (
	"time"

	"duebell/internal/domain"
)

// Tier thresholds in days-left, evaluated in order, first match wins.
// Boundaries are inclusive.
const (
	criticalDays = 2
	highDays     = 7
	mediumDays   = 14
)

// Classify maps now and the deadline to an urgency snapshot.
//
// DaysLeft and HoursLeft are ceilings of the absolute difference, so a
// moment past the deadline still reports a positive remainder and lands
// in the critical tier. Deadline rollover in NextDeadline keeps "now"
// from ever exceeding the deadline for more than an instant, so no
// separate "overdue" state exists.
func Classify(now, deadline time.Time) domain.Snapshot {
	diff := deadline.Sub(now)
	if diff < 0 {
		diff = -diff
	}

	days := int(ceilDiv(diff, 24*time.Hour))
	hours := int(ceilDiv(diff, time.Hour))

	var tier domain.Tier
	switch {
	case days <= criticalDays:
		tier = domain.TierCritical
	case days <= highDays:
		tier = domain.TierHigh
	case days <= mediumDays:
		tier = domain.TierMedium
	default:
		tier = domain.TierLow
	}

	return domain.Snapshot{Tier: tier, DaysLeft: days, HoursLeft: hours}
}

// ceilDiv divides d by unit, rounding up.
func ceilDiv(d, unit time.Duration) int64 {
	q := int64(d / unit)
	if d%unit != 0 {
		q++
	}
	return q
}
