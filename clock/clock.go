// Package clock provides the wall clock used in production and a manual clock for tests.
package clock

import (
	"afk-sentinel/contract"
	"time"
)

var _ contract.Clock = Real{}

type Real struct{}

func (Real) Now() time.Time {
	return time.Now().UTC()
}

func (Real) AfterFunc(d time.Duration, fn func()) contract.Timer {
	return time.AfterFunc(d, fn)
}

func (Real) NewTicker(d time.Duration) contract.Ticker {
	return realTicker{ticker: time.NewTicker(d)}
}

type realTicker struct {
	ticker *time.Ticker
}

func (r realTicker) C() <-chan time.Time {
	return r.ticker.C
}

func (r realTicker) Stop() {
	r.ticker.Stop()
}

// OnExecutor makes every callback of the wrapped clock run as a task of exec,
// so timer callbacks never race with the event handlers.
func OnExecutor(c contract.Clock, exec contract.Executor) contract.Clock {
	return executorClock{Clock: c, exec: exec}
}

type executorClock struct {
	contract.Clock
	exec contract.Executor
}

func (e executorClock) AfterFunc(d time.Duration, fn func()) contract.Timer {
	return e.Clock.AfterFunc(d, func() {
		e.exec.Post(fn)
	})
}
