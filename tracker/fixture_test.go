package tracker

import (
	"afk-sentinel/clock"
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"afk-sentinel/infrastructure/recorder"
	"afk-sentinel/observability"
	"afk-sentinel/repositories"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
)

const (
	holding      domain.LocationID   = "afk-room"
	general      domain.LocationID   = "general"
	notices      domain.ChannelID    = "notices"
	chat         domain.ChannelID    = "chat"
	alice        domain.ParticipantID = "alice"
	spammer      domain.ParticipantID = "spammer"
	relocateWait                      = 60 * time.Second
)

var epoch = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func testSettings() Settings {
	return Settings{
		HoldingLocationID:     holding,
		NotificationChannelID: notices,
		RelocationDelay:       relocateWait,
		RateWindow:            10 * time.Second,
		WarnThreshold:         5,
		TimeoutThreshold:      7,
		WarnCooldown:          30 * time.Second,
		SuspensionDuration:    2 * time.Minute,
		ExemptRoles:           []string{"Moderator", "Admin"},
	}
}

type fixture struct {
	t          *testing.T
	ctx        context.Context
	clock      *clock.Fake
	platform   *recorder.Recorder
	stores     repositories.Stores
	monitoring *observability.MonitoringManager
	engine     *Engine
	messages   int
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, testSettings())
}

func newFixtureWith(t *testing.T, settings Settings) *fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	fake := clock.NewFake(epoch)
	platform := recorder.New(fake)
	stores := repositories.NewMemoryStores()
	monitoring := observability.NewMonitoringManager(log)
	engine := NewEngine(log, fake, platform, stores, monitoring, settings)
	t.Cleanup(engine.Close)
	return &fixture{
		t:          t,
		ctx:        context.Background(),
		clock:      fake,
		platform:   platform,
		stores:     stores,
		monitoring: monitoring,
		engine:     engine,
	}
}

// presence feeds the platform view first, the way ingestion does.
func (f *fixture) presence(id domain.ParticipantID, name string, wasMuted, muted bool, location domain.LocationID) {
	evt := event.NewPresenceChanged(event.PresenceChanged{
		ParticipantID:     id,
		DisplayName:       name,
		PreviousSelfMuted: wasMuted,
		CurrentSelfMuted:  muted,
		LocationID:        location,
	})
	f.platform.Observe(evt)
	if err := f.engine.Handle(f.ctx, evt); err != nil {
		f.t.Fatalf("presence rejected: %v", err)
	}
}

func eventMute(id domain.ParticipantID, name string, location domain.LocationID) event.PresenceChanged {
	return event.PresenceChanged{ParticipantID: id, DisplayName: name, CurrentSelfMuted: true, LocationID: location}
}

func (f *fixture) mute(id domain.ParticipantID, name string, location domain.LocationID) {
	f.presence(id, name, false, true, location)
}

func (f *fixture) unmute(id domain.ParticipantID, name string, location domain.LocationID) {
	f.presence(id, name, true, false, location)
}

func (f *fixture) message(author domain.Author, mentions ...domain.ParticipantID) {
	f.messages++
	f.engine.HandleMessage(f.ctx, event.MessageReceived{
		MessageID: fmt.Sprintf("m%d", f.messages),
		ChannelID: chat,
		Author:    author,
		At:        f.clock.Now(),
		Mentions:  mentions,
	})
}

// burst sends n messages from author, one every step.
func (f *fixture) burst(author domain.Author, n int, step time.Duration) {
	for i := 0; i < n; i++ {
		if i > 0 {
			f.clock.Advance(step)
		}
		f.message(author)
	}
}

func (f *fixture) moves() []domain.MoveParticipant {
	var moves []domain.MoveParticipant
	for _, cmd := range f.platform.OfKind(domain.MoveParticipantKind) {
		moves = append(moves, cmd.(domain.MoveParticipant))
	}
	return moves
}
