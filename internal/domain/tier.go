// Package domain holds the core types and ports shared across layers.
package domain

// Tier classifies how close "now" is to the deadline. Tiers are totally
// ordered by time-to-deadline: the less time remains, the higher the tier.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
	TierCritical
)

// String returns the canonical lowercase tier name.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	case TierCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Snapshot is the result of classifying a moment against the deadline.
// It is derived from the clock on every use and never stored on its own.
type Snapshot struct {
	Tier      Tier
	DaysLeft  int
	HoursLeft int
}
