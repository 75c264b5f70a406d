package tracker

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"afk-sentinel/observability"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// ActivityTracker owns the ACTIVE/AWAY state machine.
// A participant is AWAY exactly when an ActivityRecord exists for them.
type ActivityTracker struct {
	log         *slog.Logger
	clock       contract.Clock
	platform    contract.Platform
	records     contract.Store[domain.ActivityRecord]
	relocations *RelocationScheduler
	monitoring  *observability.MonitoringManager
	settings    Settings
}

func NewActivityTracker(log *slog.Logger, clock contract.Clock, platform contract.Platform,
	records contract.Store[domain.ActivityRecord], relocations *RelocationScheduler,
	monitoring *observability.MonitoringManager, settings Settings) *ActivityTracker {
	return &ActivityTracker{
		log:         log,
		clock:       clock,
		platform:    platform,
		records:     records,
		relocations: relocations,
		monitoring:  monitoring,
		settings:    settings,
	}
}

// HandlePresence applies a voice state update. Updates that do not flip the
// self-muted flag are ignored.
func (a *ActivityTracker) HandlePresence(ctx context.Context, p event.PresenceChanged) {
	switch {
	case p.BecameAway():
		a.markAway(ctx, p)
	case p.BecameActive():
		a.markActive(ctx, p)
	}
}

func (a *ActivityTracker) markAway(ctx context.Context, p event.PresenceChanged) {
	now := a.clock.Now()
	name := displayName(p.DisplayName, p.ParticipantID)
	record := domain.ActivityRecord{
		ParticipantID: p.ParticipantID,
		DisplayName:   name,
		AwaySince:     now,
	}
	if p.LocationID != "" && p.LocationID != a.settings.HoldingLocationID {
		location := p.LocationID
		record.OriginalLocationID = &location
	}
	if err := a.records.Set(p.ParticipantID, record); err != nil {
		a.log.Error("Could not record away state", "participant", p.ParticipantID, "error", err)
		a.monitoring.Incr(observability.StoreFailures)
		return
	}
	a.monitoring.Incr(observability.AwayTransitions)
	a.relocations.Schedule(p.ParticipantID, now)

	notice := fmt.Sprintf("🔕 %s is now AFK.", name)
	if label, changed := a.settings.AwayLabel(name); changed {
		if err := a.platform.SetLabel(ctx, p.ParticipantID, label); err != nil {
			a.log.Warn("Could not change label", "participant", p.ParticipantID, "error", err)
			a.monitoring.Incr(observability.PlatformFailures)
			notice = fmt.Sprintf("🔕 %s is now AFK (couldn't rename).", name)
		}
	}
	a.notify(ctx, notice)
}

func (a *ActivityTracker) markActive(ctx context.Context, p event.PresenceChanged) {
	record, ok, err := a.records.Get(p.ParticipantID)
	if err != nil {
		a.log.Error("Could not read away state", "participant", p.ParticipantID, "error", err)
		a.monitoring.Incr(observability.StoreFailures)
		return
	}
	if !ok {
		return
	}
	if err := a.records.Delete(p.ParticipantID); err != nil {
		a.log.Error("Could not clear away state", "participant", p.ParticipantID, "error", err)
		a.monitoring.Incr(observability.StoreFailures)
		return
	}
	a.monitoring.Incr(observability.ActiveTransitions)

	name := displayName(record.DisplayName, p.ParticipantID)
	notice := fmt.Sprintf("✅ %s is now active.", name)
	if err := a.platform.RestoreLabel(ctx, p.ParticipantID); err != nil {
		a.log.Warn("Could not restore label", "participant", p.ParticipantID, "error", err)
		a.monitoring.Incr(observability.PlatformFailures)
		notice = fmt.Sprintf("✅ %s is now active (nickname unchanged).", name)
	}
	a.notify(ctx, notice)

	// The remembered location goes away with the record, whatever the outcome
	if record.OriginalLocationID != nil {
		if err := a.platform.MoveParticipant(ctx, p.ParticipantID, *record.OriginalLocationID); err != nil {
			a.log.Warn("Could not move participant back", "participant", p.ParticipantID,
				"location", *record.OriginalLocationID, "error", err)
			a.monitoring.Incr(observability.PlatformFailures)
		}
	}
}

// AwayFor tells whether a participant is away and for how long.
func (a *ActivityTracker) AwayFor(id domain.ParticipantID, now time.Time) (time.Duration, bool) {
	record, ok, err := a.records.Get(id)
	if err != nil {
		a.log.Error("Could not read away state", "participant", id, "error", err)
		a.monitoring.Incr(observability.StoreFailures)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	return record.AwayFor(now), true
}

// ListAway returns every away participant, longest away first.
func (a *ActivityTracker) ListAway(now time.Time) []domain.AwayEntry {
	var records []domain.ActivityRecord
	err := a.records.Range(func(_ domain.ParticipantID, record domain.ActivityRecord) bool {
		records = append(records, record)
		return true
	})
	if err != nil {
		a.log.Error("Could not list away participants", "error", err)
		a.monitoring.Incr(observability.StoreFailures)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].AwaySince.Equal(records[j].AwaySince) {
			return records[i].ParticipantID < records[j].ParticipantID
		}
		return records[i].AwaySince.Before(records[j].AwaySince)
	})

	entries := make([]domain.AwayEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, domain.AwayEntry{
			ParticipantID: record.ParticipantID,
			DisplayName:   displayName(record.DisplayName, record.ParticipantID),
			Duration:      record.AwayFor(now),
		})
	}
	return entries
}

func (a *ActivityTracker) notify(ctx context.Context, text string) {
	if a.settings.NotificationChannelID == "" {
		return
	}
	if err := a.platform.PostMessage(ctx, a.settings.NotificationChannelID, text); err != nil {
		a.log.Warn("Could not post notification", "channel", a.settings.NotificationChannelID, "error", err)
		a.monitoring.Incr(observability.PlatformFailures)
	}
}

func displayName(name string, id domain.ParticipantID) string {
	if name == "" {
		return string(id)
	}
	return name
}
