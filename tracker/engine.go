package tracker

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"afk-sentinel/errors"
	"afk-sentinel/observability"
	"afk-sentinel/repositories"
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

var _ contract.EventHandler = (*Engine)(nil)

// Engine wires the trackers together and is the single entry point for
// presence and message events, and for the read-only queries.
type Engine struct {
	log         *slog.Logger
	stores      repositories.Stores
	clock       contract.Clock
	platform    contract.Platform
	monitoring  *observability.MonitoringManager
	activity    *ActivityTracker
	relocations *RelocationScheduler
	rateLimiter *RateLimiter
	suspensions *SuspensionManager
	sweeper     *Sweeper
}

func NewEngine(log *slog.Logger, clock contract.Clock, platform contract.Platform,
	stores repositories.Stores, monitoring *observability.MonitoringManager, settings Settings) *Engine {
	relocations := NewRelocationScheduler(log, clock, platform, monitoring, settings)
	suspensions := NewSuspensionManager(log, platform, stores.Suspensions, stores.Windows, monitoring, settings)
	return &Engine{
		log:         log,
		stores:      stores,
		clock:       clock,
		platform:    platform,
		monitoring:  monitoring,
		activity:    NewActivityTracker(log, clock, platform, stores.Activity, relocations, monitoring, settings),
		relocations: relocations,
		rateLimiter: NewRateLimiter(log, platform, stores.Windows, suspensions, monitoring, settings),
		suspensions: suspensions,
		sweeper:     NewSweeper(log, stores.Windows, stores.Suspensions, monitoring, settings.RateWindow),
	}
}

// Handle routes presence and message events. Commands are not handled here.
func (e *Engine) Handle(ctx context.Context, evt event.Event) error {
	switch evt.Type {
	case event.PresenceChangedType:
		p, ok := evt.Payload.(event.PresenceChanged)
		if !ok {
			return fmt.Errorf("%w: %T for %s", errors.ErrInvalidPayload, evt.Payload, evt.Type)
		}
		e.HandlePresence(ctx, p)
	case event.MessageReceivedType:
		m, ok := evt.Payload.(event.MessageReceived)
		if !ok {
			return fmt.Errorf("%w: %T for %s", errors.ErrInvalidPayload, evt.Payload, evt.Type)
		}
		e.HandleMessage(ctx, m)
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnknownEvent, evt.Type)
	}
	return nil
}

func (e *Engine) HandlePresence(ctx context.Context, p event.PresenceChanged) {
	e.activity.HandlePresence(ctx, p)
}

// HandleMessage runs the burst detection, then answers mentions of away participants.
// Bot messages and messages of suspended participants are dropped before anything is counted.
func (e *Engine) HandleMessage(ctx context.Context, m event.MessageReceived) {
	if m.Author.IsBot {
		return
	}
	now := e.clock.Now()
	if e.suspensions.Silenced(m.Author.ID, now) {
		e.monitoring.Incr(observability.IgnoredMessages)
		return
	}
	e.rateLimiter.Observe(ctx, m, now)
	e.answerMentions(ctx, m)
}

func (e *Engine) answerMentions(ctx context.Context, m event.MessageReceived) {
	now := e.clock.Now()
	for _, id := range lo.Uniq(m.Mentions) {
		duration, away := e.activity.AwayFor(id, now)
		if !away {
			continue
		}
		text := fmt.Sprintf("🔕 %s is AFK (%s)", domain.Mention(id), domain.FormatDuration(duration))
		if err := e.platform.PostMessage(ctx, m.ChannelID, text); err != nil {
			e.log.Warn("Could not answer mention", "participant", id, "message", m.MessageID, "error", err)
			e.monitoring.Incr(observability.PlatformFailures)
			continue
		}
		e.monitoring.Incr(observability.MentionReplies)
	}
}

func (e *Engine) ListAway() []domain.AwayEntry {
	return e.activity.ListAway(e.clock.Now())
}

// StatusOf never fails: an unknown participant is simply neither away nor suspended.
func (e *Engine) StatusOf(id domain.ParticipantID) domain.Status {
	now := e.clock.Now()
	status := domain.Status{ParticipantID: id}
	status.AwayDuration, status.IsAway = e.activity.AwayFor(id, now)
	status.SuspensionRemaining, status.IsSuspended = e.suspensions.Remaining(id, now)
	return status
}

// Sweep runs one garbage collection pass at the current time.
func (e *Engine) Sweep() SweepReport {
	return e.sweeper.SweepAt(e.clock.Now())
}

// Window exposes the pruned rate window of a participant.
func (e *Engine) Window(id domain.ParticipantID) (domain.RateWindow, bool) {
	return e.rateLimiter.Window(id, e.clock.Now())
}

func (e *Engine) PendingRelocation(id domain.ParticipantID) (PendingRelocation, bool) {
	return e.relocations.Pending(id)
}

// EngineStats counts the records currently held.
type EngineStats struct {
	Away               int `json:"away"`
	Suspended          int `json:"suspended"`
	RateWindows        int `json:"rate_windows"`
	PendingRelocations int `json:"pending_relocations"`
}

func (e *Engine) Stats() EngineStats {
	return EngineStats{
		Away:               e.count(e.stores.Activity.Len),
		Suspended:          e.count(e.stores.Suspensions.Len),
		RateWindows:        e.count(e.stores.Windows.Len),
		PendingRelocations: e.relocations.PendingCount(),
	}
}

func (e *Engine) count(length func() (int, error)) int {
	n, err := length()
	if err != nil {
		e.log.Error("Could not count records", "error", err)
		e.monitoring.Incr(observability.StoreFailures)
	}
	return n
}

// Close stops every pending relocation timer.
func (e *Engine) Close() {
	e.relocations.StopAll()
}
