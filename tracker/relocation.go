package tracker

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/observability"
	"afk-sentinel/repositories"
	"context"
	"log/slog"
	"time"
)

// PendingRelocation is a scheduled move to the holding location,
// created for one away transition.
type PendingRelocation struct {
	ParticipantID domain.ParticipantID
	AwaySince     time.Time
	timer         contract.Timer
}

// RelocationScheduler moves away participants to the holding location once
// the debounce delay has elapsed. Nothing cancels a relocation when the
// participant comes back: the callback re-reads the live voice state and
// does nothing unless the participant is still muted outside the holding location.
type RelocationScheduler struct {
	log        *slog.Logger
	clock      contract.Clock
	platform   contract.Platform
	monitoring *observability.MonitoringManager
	settings   Settings
	// Timer handles cannot leave the process, pending relocations always live in memory.
	pending *repositories.MemoryStore[*PendingRelocation]
}

func NewRelocationScheduler(log *slog.Logger, clock contract.Clock, platform contract.Platform,
	monitoring *observability.MonitoringManager, settings Settings) *RelocationScheduler {
	return &RelocationScheduler{
		log:        log,
		clock:      clock,
		platform:   platform,
		monitoring: monitoring,
		settings:   settings,
		pending:    repositories.NewMemoryStore[*PendingRelocation](),
	}
}

// Schedule arms a relocation for the away transition that happened at awaySince.
// Only the latest away transition matters: a relocation still pending for the
// same participant is superseded and its timer stopped.
func (s *RelocationScheduler) Schedule(id domain.ParticipantID, awaySince time.Time) {
	if previous, ok, _ := s.pending.Get(id); ok {
		previous.timer.Stop()
		s.log.Debug("Superseding pending relocation", "participant", id, "away_since", previous.AwaySince)
	}
	relocation := &PendingRelocation{ParticipantID: id, AwaySince: awaySince}
	relocation.timer = s.clock.AfterFunc(s.settings.RelocationDelay, func() {
		s.fire(relocation)
	})
	_ = s.pending.Set(id, relocation)
}

// Pending returns the relocation waiting for a participant, if any.
func (s *RelocationScheduler) Pending(id domain.ParticipantID) (PendingRelocation, bool) {
	relocation, ok, _ := s.pending.Get(id)
	if !ok {
		return PendingRelocation{}, false
	}
	return *relocation, true
}

func (s *RelocationScheduler) PendingCount() int {
	count, _ := s.pending.Len()
	return count
}

// StopAll stops every pending timer. Used on shutdown.
func (s *RelocationScheduler) StopAll() {
	var ids []domain.ParticipantID
	_ = s.pending.Range(func(id domain.ParticipantID, relocation *PendingRelocation) bool {
		relocation.timer.Stop()
		ids = append(ids, id)
		return true
	})
	for _, id := range ids {
		_ = s.pending.Delete(id)
	}
}

func (s *RelocationScheduler) fire(relocation *PendingRelocation) {
	id := relocation.ParticipantID
	// A superseded or stopped relocation may still fire when its callback was
	// already queued on the loop
	if current, ok, _ := s.pending.Get(id); !ok || current != relocation {
		s.log.Debug("Dropping superseded relocation", "participant", id, "away_since", relocation.AwaySince)
		return
	}
	_ = s.pending.Delete(id)

	ctx, cancel := context.WithTimeout(context.Background(), s.settings.commandTimeout())
	defer cancel()

	state, err := s.platform.CurrentVoiceState(ctx, id)
	if err != nil {
		s.log.Warn("Could not read voice state before relocation", "participant", id, "error", err)
		s.monitoring.Incr(observability.PlatformFailures)
		return
	}
	if !state.SelfMuted || !state.InVoice() || state.LocationID == s.settings.HoldingLocationID {
		s.log.Debug("Relocation no longer needed", "participant", id,
			"self_muted", state.SelfMuted, "location", state.LocationID)
		s.monitoring.Incr(observability.RelocationSkipped)
		return
	}
	if err := s.platform.MoveParticipant(ctx, id, s.settings.HoldingLocationID); err != nil {
		s.log.Warn("Could not move participant to holding location", "participant", id, "error", err)
		s.monitoring.Incr(observability.RelocationFailures)
		return
	}
	s.log.Info("Participant moved to holding location", "participant", id,
		"away_for", domain.FormatDuration(s.clock.Now().Sub(relocation.AwaySince)))
	s.monitoring.Incr(observability.Relocations)
}
