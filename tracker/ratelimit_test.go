package tracker

import (
	"afk-sentinel/domain"
	"afk-sentinel/observability"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var member = domain.Author{ID: spammer, Roles: []string{"Member"}}

func TestRateLimit_WarnsThenSuspends(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// Given seven messages within the window
	f.burst(member, 7, time.Second)

	// Then one warning at the fifth, one suspension at the seventh
	req.Equal([]string{
		"⚠️ <@spammer>, please slow down!",
		"⏳ <@spammer> has been timed out for 2m 0s.",
	}, f.platform.Messages())
	req.Equal([]domain.Command{domain.Suspend{
		ParticipantID: spammer, Duration: 2 * time.Minute, Reason: SuspensionReason,
	}}, f.platform.OfKind(domain.SuspendKind))

	// Then the window is cleared and the suspension recorded
	_, ok := f.engine.Window(spammer)
	req.False(ok)
	status := f.engine.StatusOf(spammer)
	req.True(status.IsSuspended)
	req.Equal(2*time.Minute, status.SuspensionRemaining)
}

func TestRateLimit_SuspendedMessagesAreIgnored(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.burst(member, 7, time.Second)
	f.platform.Reset()

	// When the suspended participant keeps posting
	f.clock.Advance(time.Second)
	f.burst(member, 10, time.Second)

	// Then nothing is counted nor answered
	req.Empty(f.platform.Commands())
	_, ok := f.engine.Window(spammer)
	req.False(ok)
	req.Equal(uint64(10), f.monitoring.Get(observability.IgnoredMessages))

	// When the suspension has expired
	f.clock.AdvanceTo(epoch.Add(6*time.Second + 2*time.Minute))
	f.message(member)

	// Then the participant starts over with a fresh window
	window, ok := f.engine.Window(spammer)
	req.True(ok)
	req.Equal(1, window.Len())
	req.False(f.engine.StatusOf(spammer).IsSuspended)
}

func TestRateLimit_MissingPermission(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.platform.SetDefaultEligibility(domain.MissingPermission)

	// Given seven then eight messages
	f.burst(member, 8, time.Second)

	// Then no suspension, a notice on each attempt, and the window is kept
	req.Empty(f.platform.OfKind(domain.SuspendKind))
	req.Equal([]string{
		"⚠️ <@spammer>, please slow down!",
		"⚠️ <@spammer> is spamming, but I don't have permission to timeout members.",
		"⚠️ <@spammer> is spamming, but I don't have permission to timeout members.",
	}, f.platform.Messages())
	window, ok := f.engine.Window(spammer)
	req.True(ok)
	req.Equal(8, window.Len())
	req.False(f.engine.StatusOf(spammer).IsSuspended)
	req.Equal(uint64(2), f.monitoring.Get(observability.SuspensionRefusals))
}

func TestRateLimit_HierarchyViolation(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.platform.SetEligibility(spammer, domain.HierarchyViolation)

	f.burst(member, 7, time.Second)

	req.Empty(f.platform.OfKind(domain.SuspendKind))
	req.Contains(f.platform.Messages(), "⚠️ <@spammer> is spamming, but I can't timeout due to role hierarchy.")
	window, ok := f.engine.Window(spammer)
	req.True(ok)
	req.Equal(7, window.Len())
}

func TestRateLimit_SuspendFailureKeepsWindow(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.platform.FailOn(domain.SuspendKind, fmt.Errorf("rate limited"))

	f.burst(member, 7, time.Second)

	req.Contains(f.platform.Messages(), "⚠️ Tried to timeout <@spammer>, but an error occurred.")
	window, ok := f.engine.Window(spammer)
	req.True(ok)
	req.Equal(7, window.Len())
	req.False(f.engine.StatusOf(spammer).IsSuspended)
	req.Equal(uint64(1), f.monitoring.Get(observability.SuspensionFailures))
}

func TestRateLimit_WarningCooldown(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	warnings := func() uint64 { return f.monitoring.Get(observability.Warnings) }

	// Given a first burst of five: warned at 4s
	f.burst(member, 5, time.Second)
	req.Equal(uint64(1), warnings())

	// When a second burst crosses again 20s later, inside the cooldown
	f.clock.AdvanceTo(epoch.Add(20 * time.Second))
	f.burst(member, 5, time.Second)
	req.Equal(uint64(1), warnings())

	// When a third burst crosses after the cooldown
	f.clock.AdvanceTo(epoch.Add(40 * time.Second))
	f.burst(member, 5, time.Second)

	// Then it is warned again
	req.Equal(uint64(2), warnings())
	req.Empty(f.platform.OfKind(domain.SuspendKind))
}

func TestRateLimit_WarnOncePerCrossing(t *testing.T) {
	req := require.New(t)
	settings := testSettings()
	settings.TimeoutThreshold = 100
	f := newFixtureWith(t, settings)

	f.burst(member, 9, time.Second)

	req.Equal(uint64(1), f.monitoring.Get(observability.Warnings))
}

func TestRateLimit_WindowBoundary(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// Given a message exactly one window width before another
	f.message(member)
	f.clock.Advance(10 * time.Second)
	f.message(member)

	// Then the older one is out of the window
	window, ok := f.engine.Window(spammer)
	req.True(ok)
	req.Equal([]time.Time{epoch.Add(10 * time.Second)}, window.Timestamps)
}

func TestRateLimit_ExemptAuthors(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	moderator := domain.Author{ID: "mod", Roles: []string{"Moderator"}}
	admin := domain.Author{ID: "boss", IsAdmin: true}
	bot := domain.Author{ID: "robot", IsBot: true}

	f.burst(moderator, 10, 100*time.Millisecond)
	f.burst(admin, 10, 100*time.Millisecond)
	f.burst(bot, 10, 100*time.Millisecond)

	// Then nobody is warned or suspended
	req.Empty(f.platform.Commands())

	// Then exempt authors are still counted, bots are not
	window, ok := f.engine.Window("mod")
	req.True(ok)
	req.Equal(10, window.Len())
	_, ok = f.engine.Window("robot")
	req.False(ok)
}

func TestRateLimit_MentionsAnsweredEvenWhenRefused(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.platform.SetDefaultEligibility(domain.MissingPermission)
	f.mute(alice, "Alice", general)
	f.platform.Reset()

	for i := 0; i < 7; i++ {
		f.message(member, alice)
	}

	req.Contains(f.platform.Messages(), "🔕 <@alice> is AFK (0s)")
	req.Empty(f.platform.OfKind(domain.SuspendKind))
}
