package workers

import (
	"afk-sentinel/contract"
	"context"
	"log/slog"
	"time"
)

var _ contract.Worker = (*SweeperWorker)(nil)

// SweeperWorker posts a sweep pass into the event loop on every tick.
// The sweep itself runs on the loop, never on this goroutine.
type SweeperWorker struct {
	log      *slog.Logger
	clock    contract.Clock
	loop     contract.Executor
	sweep    func()
	interval time.Duration
}

func NewSweeperWorker(log *slog.Logger, clock contract.Clock, loop contract.Executor,
	sweep func(), interval time.Duration) *SweeperWorker {
	return &SweeperWorker{log: log, clock: clock, loop: loop, sweep: sweep, interval: interval}
}

func (w *SweeperWorker) Run(ctx context.Context) error {
	if w.interval <= 0 {
		w.log.Info("Sweeper disabled")
		return nil
	}
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping sweeper")
			return nil
		case <-ticker.C():
			if !w.loop.Post(w.sweep) {
				return nil
			}
		}
	}
}
