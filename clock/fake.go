package clock

import (
	"afk-sentinel/contract"
	"sort"
	"sync"
	"time"
)

var _ contract.Clock = (*Fake)(nil)

// Fake is a manually advanced clock. Callbacks run synchronously inside
// Advance, in due order, on the caller's goroutine.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	timers  []*fakeTimer
	tickers []*fakeTicker
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) contract.Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{clock: f, at: f.now.Add(d), seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

func (f *Fake) NewTicker(d time.Duration) contract.Ticker {
	if d <= 0 {
		panic("non-positive interval for NewTicker")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{clock: f, period: d, next: f.now.Add(d), c: make(chan time.Time, 1)}
	f.tickers = append(f.tickers, t)
	return t
}

// Pending counts the timers that are neither fired nor stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// Tickers counts the running tickers.
func (f *Fake) Tickers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// Advance moves time forward by d, firing every timer and tick that falls due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()
	f.AdvanceTo(target)
}

// AdvanceTo moves time forward to target. Moving backwards is ignored.
func (f *Fake) AdvanceTo(target time.Time) {
	for {
		f.mu.Lock()
		timer := f.nextTimer(target)
		ticker := f.nextTicker(target)

		switch {
		case timer != nil && (ticker == nil || !ticker.next.Before(timer.at)):
			f.now = laterOf(f.now, timer.at)
			f.removeTimer(timer)
			fn := timer.fn
			f.mu.Unlock()
			fn()
		case ticker != nil:
			f.now = laterOf(f.now, ticker.next)
			at := ticker.next
			ticker.next = ticker.next.Add(ticker.period)
			f.mu.Unlock()
			select {
			case ticker.c <- at:
			default:
				// Same as time.Ticker: slow readers lose ticks.
			}
		default:
			f.now = laterOf(f.now, target)
			f.mu.Unlock()
			return
		}
	}
}

func (f *Fake) nextTimer(target time.Time) *fakeTimer {
	due := make([]*fakeTimer, 0, len(f.timers))
	for _, t := range f.timers {
		if !t.at.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (f *Fake) nextTicker(target time.Time) *fakeTicker {
	var next *fakeTicker
	for _, t := range f.tickers {
		if t.next.After(target) {
			continue
		}
		if next == nil || t.next.Before(next.next) {
			next = t
		}
	}
	return next
}

func (f *Fake) removeTimer(timer *fakeTimer) bool {
	for i, t := range f.timers {
		if t == timer {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return true
		}
	}
	return false
}

func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

type fakeTimer struct {
	clock *Fake
	at    time.Time
	seq   int
	fn    func()
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	return t.clock.removeTimer(t)
}

type fakeTicker struct {
	clock  *Fake
	period time.Duration
	next   time.Time
	c      chan time.Time
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.c
}

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	for i, tk := range t.clock.tickers {
		if tk == t {
			t.clock.tickers = append(t.clock.tickers[:i], t.clock.tickers[i+1:]...)
			return
		}
	}
}
