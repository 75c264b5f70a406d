package domain

import "time"

// ActivityRecord exists while a participant is away.
// At most one record per participant is kept.
type ActivityRecord struct {
	ParticipantID      ParticipantID
	DisplayName        string
	AwaySince          time.Time
	OriginalLocationID *LocationID
}

// AwayFor returns the time spent away at the given instant.
func (a ActivityRecord) AwayFor(now time.Time) time.Duration {
	d := now.Sub(a.AwaySince)
	if d < 0 {
		return 0
	}
	return d
}

// AwayEntry is one line of the away listing.
type AwayEntry struct {
	ParticipantID ParticipantID
	DisplayName   string
	Duration      time.Duration
}

// Status is the answer to a status lookup. A participant nobody tracks
// yields a zero Status, never an error.
type Status struct {
	ParticipantID       ParticipantID
	IsAway              bool
	AwayDuration        time.Duration
	IsSuspended         bool
	SuspensionRemaining time.Duration
}
