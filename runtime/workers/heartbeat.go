package workers

import (
	"afk-sentinel/contract"
	"afk-sentinel/observability"
	"context"
	"log/slog"
	"time"
)

var _ contract.Worker = (*HeartbeatWorker)(nil)

// HeartbeatWorker logs the process health and the tracker counters at a fixed interval.
type HeartbeatWorker struct {
	log        *slog.Logger
	monitoring *observability.MonitoringManager
	backlog    func() int
	interval   time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, monitoring *observability.MonitoringManager,
	backlog func() int, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, monitoring: monitoring, backlog: backlog, interval: interval}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	if w.interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats := w.monitoring.GetLatest()
			w.log.Info("Heartbeat",
				"uptime", stats.Uptime,
				"rss_bytes", stats.RssBytes,
				"cpu_percent", stats.CpuPercent,
				"goroutines", stats.Goroutines,
				"backlog", w.backlog(),
				"away_transitions", stats.Counters[observability.AwayTransitions],
				"relocations", stats.Counters[observability.Relocations],
				"warnings", stats.Counters[observability.Warnings],
				"suspensions", stats.Counters[observability.Suspensions],
			)
		}
	}
}
