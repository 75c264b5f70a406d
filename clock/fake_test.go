package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestFake_AdvanceFiresDueTimersInOrder(t *testing.T) {
	req := require.New(t)
	c := NewFake(epoch)
	var fired []string

	c.AfterFunc(2*time.Second, func() { fired = append(fired, "second") })
	c.AfterFunc(1*time.Second, func() { fired = append(fired, "first") })
	c.AfterFunc(10*time.Second, func() { fired = append(fired, "late") })

	c.Advance(5 * time.Second)

	req.Equal([]string{"first", "second"}, fired)
	req.Equal(epoch.Add(5*time.Second), c.Now())
	req.Equal(1, c.Pending())
}

func TestFake_CallbackSeesItsOwnDueTime(t *testing.T) {
	req := require.New(t)
	c := NewFake(epoch)
	var seen time.Time

	c.AfterFunc(3*time.Second, func() { seen = c.Now() })
	c.Advance(time.Minute)

	req.Equal(epoch.Add(3*time.Second), seen)
}

func TestFake_StoppedTimerNeverFires(t *testing.T) {
	req := require.New(t)
	c := NewFake(epoch)
	called := false

	timer := c.AfterFunc(time.Second, func() { called = true })
	req.True(timer.Stop())
	req.False(timer.Stop())

	c.Advance(time.Minute)
	req.False(called)
}

func TestFake_TimerScheduledFromCallbackFiresInSameAdvance(t *testing.T) {
	req := require.New(t)
	c := NewFake(epoch)
	count := 0

	c.AfterFunc(time.Second, func() {
		count++
		c.AfterFunc(time.Second, func() { count++ })
	})
	c.Advance(3 * time.Second)

	req.Equal(2, count)
}

func TestFake_TickerDeliversTicks(t *testing.T) {
	req := require.New(t)
	c := NewFake(epoch)
	ticker := c.NewTicker(time.Minute)
	defer ticker.Stop()

	c.Advance(time.Minute)

	select {
	case at := <-ticker.C():
		req.Equal(epoch.Add(time.Minute), at)
	default:
		req.Fail("expected a tick")
	}
}
