package tracker

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/observability"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SuspensionManager owns the suspension records. A live record means
// every message of that participant is ignored.
type SuspensionManager struct {
	log        *slog.Logger
	platform   contract.Platform
	records    contract.Store[domain.SuspensionRecord]
	windows    contract.Store[domain.RateWindow]
	monitoring *observability.MonitoringManager
	settings   Settings
}

func NewSuspensionManager(log *slog.Logger, platform contract.Platform,
	records contract.Store[domain.SuspensionRecord], windows contract.Store[domain.RateWindow],
	monitoring *observability.MonitoringManager, settings Settings) *SuspensionManager {
	return &SuspensionManager{
		log:        log,
		platform:   platform,
		records:    records,
		windows:    windows,
		monitoring: monitoring,
		settings:   settings,
	}
}

// Silenced reports whether messages of id must be ignored at now.
// The first lookup after expiry deletes the record and the rate window,
// so the participant starts over with an empty window.
func (s *SuspensionManager) Silenced(id domain.ParticipantID, now time.Time) bool {
	record, ok, err := s.records.Get(id)
	if err != nil {
		s.log.Error("Could not read suspension", "participant", id, "error", err)
		s.monitoring.Incr(observability.StoreFailures)
		return false
	}
	if !ok {
		return false
	}
	if !record.Expired(now) {
		return true
	}
	s.expire(id)
	if err := s.windows.Delete(id); err != nil {
		s.log.Error("Could not reset rate window", "participant", id, "error", err)
		s.monitoring.Incr(observability.StoreFailures)
	}
	return false
}

// Remaining returns the time left on a live suspension.
// A past-due record found here is deleted.
func (s *SuspensionManager) Remaining(id domain.ParticipantID, now time.Time) (time.Duration, bool) {
	record, ok, err := s.records.Get(id)
	if err != nil {
		s.log.Error("Could not read suspension", "participant", id, "error", err)
		s.monitoring.Incr(observability.StoreFailures)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	if record.Expired(now) {
		s.expire(id)
		return 0, false
	}
	return record.Remaining(now), true
}

// Escalate tries to suspend a participant. It returns true only when the
// suspension was issued and recorded, the caller then clears the window.
// Refusals and failures leave every record untouched so that the next
// message re-attempts.
func (s *SuspensionManager) Escalate(ctx context.Context, id domain.ParticipantID, channel domain.ChannelID, now time.Time) bool {
	eligibility, err := s.platform.CanSuspend(ctx, id)
	if err != nil {
		s.log.Warn("Could not check suspension privilege", "participant", id, "error", err)
		s.monitoring.Incr(observability.PlatformFailures)
		return false
	}

	switch eligibility {
	case domain.Eligible:
	case domain.HierarchyViolation:
		s.log.Warn("Cannot suspend participant (higher or equal role)", "participant", id)
		s.monitoring.Incr(observability.SuspensionRefusals)
		s.post(ctx, channel, fmt.Sprintf("⚠️ %s is spamming, but I can't timeout due to role hierarchy.", domain.Mention(id)))
		return false
	default:
		s.log.Warn("Missing permission to suspend participants", "participant", id, "eligibility", eligibility)
		s.monitoring.Incr(observability.SuspensionRefusals)
		s.post(ctx, channel, fmt.Sprintf("⚠️ %s is spamming, but I don't have permission to timeout members.", domain.Mention(id)))
		return false
	}

	if err := s.platform.Suspend(ctx, id, s.settings.SuspensionDuration, SuspensionReason); err != nil {
		s.log.Error("Failed to suspend participant", "participant", id, "error", err)
		s.monitoring.Incr(observability.SuspensionFailures)
		s.post(ctx, channel, fmt.Sprintf("⚠️ Tried to timeout %s, but an error occurred.", domain.Mention(id)))
		return false
	}

	record := domain.SuspensionRecord{ParticipantID: id, ExpiresAt: now.Add(s.settings.SuspensionDuration)}
	if err := s.records.Set(id, record); err != nil {
		// The platform already applied the suspension, only our bookkeeping is missing
		s.log.Error("Could not record suspension", "participant", id, "error", err)
		s.monitoring.Incr(observability.StoreFailures)
	}
	s.monitoring.Incr(observability.Suspensions)
	s.log.Info("Participant suspended", "participant", id, "until", record.ExpiresAt)
	s.post(ctx, channel, fmt.Sprintf("⏳ %s has been timed out for %s.",
		domain.Mention(id), domain.FormatDuration(s.settings.SuspensionDuration)))
	return true
}

func (s *SuspensionManager) expire(id domain.ParticipantID) {
	if err := s.records.Delete(id); err != nil {
		s.log.Error("Could not delete expired suspension", "participant", id, "error", err)
		s.monitoring.Incr(observability.StoreFailures)
	}
}

func (s *SuspensionManager) post(ctx context.Context, channel domain.ChannelID, text string) {
	if channel == "" {
		return
	}
	if err := s.platform.PostMessage(ctx, channel, text); err != nil {
		s.log.Warn("Could not post message", "channel", channel, "error", err)
		s.monitoring.Incr(observability.PlatformFailures)
	}
}
