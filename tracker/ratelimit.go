package tracker

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"afk-sentinel/observability"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
)

// RateLimiter counts messages per participant in a sliding window,
// warns on the warn threshold and escalates on the timeout threshold.
type RateLimiter struct {
	log         *slog.Logger
	platform    contract.Platform
	windows     contract.Store[domain.RateWindow]
	suspensions *SuspensionManager
	monitoring  *observability.MonitoringManager
	settings    Settings
}

func NewRateLimiter(log *slog.Logger, platform contract.Platform,
	windows contract.Store[domain.RateWindow], suspensions *SuspensionManager,
	monitoring *observability.MonitoringManager, settings Settings) *RateLimiter {
	return &RateLimiter{
		log:         log,
		platform:    platform,
		windows:     windows,
		suspensions: suspensions,
		monitoring:  monitoring,
		settings:    settings,
	}
}

// IsExempt is true for admins and for members of an exempt role.
func (r *RateLimiter) IsExempt(author domain.Author) bool {
	if author.IsAdmin {
		return true
	}
	return lo.ContainsBy(author.Roles, func(role string) bool {
		return lo.Contains(r.settings.ExemptRoles, role)
	})
}

// Observe records one message at now and applies the thresholds.
// Exempt authors are still recorded, their thresholds are never evaluated.
func (r *RateLimiter) Observe(ctx context.Context, m event.MessageReceived, now time.Time) {
	id := m.Author.ID
	window, _, err := r.windows.Get(id)
	if err != nil {
		r.log.Error("Could not read rate window", "participant", id, "error", err)
		r.monitoring.Incr(observability.StoreFailures)
		return
	}
	window.Prune(now, r.settings.RateWindow)
	window.Timestamps = append(window.Timestamps, now)

	exempt := r.IsExempt(m.Author)
	count := window.Len()

	// Equality, not >=: one warning per crossing of the threshold
	warn := !exempt && count == r.settings.WarnThreshold &&
		now.Sub(window.LastWarnedAt) > r.settings.WarnCooldown
	if warn {
		window.LastWarnedAt = now
	}
	if err := r.windows.Set(id, window); err != nil {
		r.log.Error("Could not save rate window", "participant", id, "error", err)
		r.monitoring.Incr(observability.StoreFailures)
		return
	}
	if exempt {
		return
	}

	if warn {
		r.monitoring.Incr(observability.Warnings)
		r.log.Info("Participant warned for spamming", "participant", id, "count", count)
		if err := r.platform.PostMessage(ctx, m.ChannelID, fmt.Sprintf("⚠️ %s, please slow down!", domain.Mention(id))); err != nil {
			r.log.Warn("Could not post warning", "participant", id, "error", err)
			r.monitoring.Incr(observability.PlatformFailures)
		}
	}

	if count >= r.settings.TimeoutThreshold {
		if !r.suspensions.Escalate(ctx, id, m.ChannelID, now) {
			return
		}
		if err := r.windows.Delete(id); err != nil {
			r.log.Error("Could not clear rate window", "participant", id, "error", err)
			r.monitoring.Incr(observability.StoreFailures)
		}
	}
}

// Window returns a copy of the current window of a participant, pruned at now.
func (r *RateLimiter) Window(id domain.ParticipantID, now time.Time) (domain.RateWindow, bool) {
	window, ok, err := r.windows.Get(id)
	if err != nil || !ok {
		return domain.RateWindow{}, false
	}
	window.Prune(now, r.settings.RateWindow)
	return window, true
}
