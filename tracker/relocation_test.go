package tracker

import (
	"afk-sentinel/clock"
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/infrastructure/recorder"
	"afk-sentinel/observability"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// queuedClock hands timer callbacks out instead of running them, the way the
// loop clock does once a callback is posted: Stop can no longer take it back.
type queuedClock struct {
	*clock.Fake
	callbacks []func()
}

func (c *queuedClock) AfterFunc(_ time.Duration, fn func()) contract.Timer {
	c.callbacks = append(c.callbacks, fn)
	return queuedTimer{}
}

type queuedTimer struct{}

func (queuedTimer) Stop() bool { return false }

func TestRelocation_SupersededCallbackDoesNothing(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clk := &queuedClock{Fake: clock.NewFake(epoch)}
	platform := recorder.New(clk)
	platform.SetVoiceState(alice, domain.VoiceState{SelfMuted: true, LocationID: general})
	scheduler := NewRelocationScheduler(log, clk, platform, observability.NewMonitoringManager(log), testSettings())

	// Given a relocation superseded after its callback was already queued
	scheduler.Schedule(alice, epoch)
	scheduler.Schedule(alice, epoch.Add(10*time.Second))
	req.Len(clk.callbacks, 2)

	// When the stale callback runs
	clk.callbacks[0]()

	// Then nobody moves and the newer relocation is still pending
	req.Empty(platform.OfKind(domain.MoveParticipantKind))
	pending, ok := scheduler.Pending(alice)
	req.True(ok)
	req.Equal(epoch.Add(10*time.Second), pending.AwaySince)

	// And the current one still relocates
	clk.callbacks[1]()
	req.Equal([]domain.Command{
		domain.MoveParticipant{ParticipantID: alice, Target: holding},
	}, platform.OfKind(domain.MoveParticipantKind))
	req.Zero(scheduler.PendingCount())
}

func TestRelocation_StoppedCallbackDoesNothing(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	clk := &queuedClock{Fake: clock.NewFake(epoch)}
	platform := recorder.New(clk)
	platform.SetVoiceState(alice, domain.VoiceState{SelfMuted: true, LocationID: general})
	scheduler := NewRelocationScheduler(log, clk, platform, observability.NewMonitoringManager(log), testSettings())

	// Given a relocation queued then stopped on shutdown
	scheduler.Schedule(alice, epoch)
	scheduler.StopAll()

	// When its callback runs anyway
	clk.callbacks[0]()

	// Then nothing is moved
	req.Empty(platform.OfKind(domain.MoveParticipantKind))
}
