package workers

import (
	"afk-sentinel/contract"
	"afk-sentinel/errors"
	"context"
	"log/slog"
	"sync"
)

var (
	_ contract.Worker   = (*EventLoop)(nil)
	_ contract.Executor = (*EventLoop)(nil)
)

// EventLoop is the single execution context of the engine.
// Events, timer callbacks and queries are all posted here and run one at a time.
// The queue belongs to the loop, not to Run, so a restart after a panic
// picks up the tasks still waiting.
type EventLoop struct {
	log      *slog.Logger
	tasks    chan func()
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewEventLoop(log *slog.Logger, bufferSize int) *EventLoop {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &EventLoop{
		log:     log,
		tasks:   make(chan func(), bufferSize),
		stopped: make(chan struct{}),
	}
}

// Post queues a task, blocking while the queue is full.
// It returns false once the loop is stopped.
func (l *EventLoop) Post(task func()) bool {
	select {
	case <-l.stopped:
		return false
	default:
	}
	select {
	case l.tasks <- task:
		return true
	case <-l.stopped:
		return false
	}
}

// Submit is Post bounded by ctx.
func (l *EventLoop) Submit(ctx context.Context, task func()) error {
	select {
	case <-l.stopped:
		return errors.ErrLoopStopped
	default:
	}
	select {
	case l.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return errors.ErrLoopStopped
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *EventLoop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := l.Submit(ctx, func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		return errors.ErrLoopStopped
	}
}

// Ask runs fn on the loop and returns its result.
// When ctx expires first, fn may still run later, its result is then dropped.
func Ask[T any](ctx context.Context, loop *EventLoop, fn func() T) (T, error) {
	var zero T
	results := make(chan T, 1)
	if err := loop.Submit(ctx, func() {
		results <- fn()
	}); err != nil {
		return zero, err
	}
	select {
	case result := <-results:
		return result, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-loop.stopped:
		return zero, errors.ErrLoopStopped
	}
}

func (l *EventLoop) Run(ctx context.Context) error {
	l.log.Info("Starting event loop")
	for {
		select {
		case <-ctx.Done():
			l.stop()
			l.log.Debug("Context done, event loop stopped", "dropped_tasks", len(l.tasks))
			return nil
		case task := <-l.tasks:
			task()
		}
	}
}

func (l *EventLoop) stop() {
	l.stopOnce.Do(func() {
		close(l.stopped)
	})
}

// Backlog is the number of tasks waiting.
func (l *EventLoop) Backlog() int {
	return len(l.tasks)
}
