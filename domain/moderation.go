package domain

import "time"

// RateWindow keeps the recent message times of one participant, oldest first.
type RateWindow struct {
	Timestamps   []time.Time
	LastWarnedAt time.Time
}

// Prune drops every timestamp at least `width` old, relative to now.
// After it returns, every retained t satisfies now - t < width.
func (w *RateWindow) Prune(now time.Time, width time.Duration) {
	i := 0
	for i < len(w.Timestamps) && now.Sub(w.Timestamps[i]) >= width {
		i++
	}
	if i > 0 {
		w.Timestamps = append([]time.Time(nil), w.Timestamps[i:]...)
	}
}

func (w *RateWindow) Len() int {
	return len(w.Timestamps)
}

// SuspensionRecord marks a participant whose messages are ignored until ExpiresAt.
type SuspensionRecord struct {
	ParticipantID ParticipantID
	ExpiresAt     time.Time
}

func (s SuspensionRecord) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Remaining is the time left before expiry, zero once expired.
func (s SuspensionRecord) Remaining(now time.Time) time.Duration {
	if s.Expired(now) {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}

// SuspendEligibility is the answer of the platform to "may we suspend this participant?".
type SuspendEligibility int

const (
	Eligible SuspendEligibility = iota
	MissingPermission
	HierarchyViolation
)

func (e SuspendEligibility) String() string {
	switch e {
	case Eligible:
		return "ELIGIBLE"
	case MissingPermission:
		return "MISSING_PERMISSION"
	case HierarchyViolation:
		return "HIERARCHY_VIOLATION"
	default:
		return "UNKNOWN"
	}
}
