package runtime

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"afk-sentinel/observability"
	"afk-sentinel/runtime/workers"
	"afk-sentinel/tracker"
	"context"
	"log/slog"
	"sync"
)

// Snapshot is a consistent view of the engine, taken on the event loop.
type Snapshot struct {
	Engine     tracker.EngineStats           `json:"engine"`
	Away       []domain.AwayEntry            `json:"away"`
	Backlog    int                           `json:"backlog"`
	Monitoring observability.MonitoringStats `json:"monitoring"`
}

type Orchestrator struct {
	mu         sync.Mutex
	log        *slog.Logger
	supervisor contract.ISupervisor
	loop       *workers.EventLoop
	engine     *tracker.Engine
	router     contract.EventHandler
	monitoring *observability.MonitoringManager
	workers    []contract.Worker
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, loop *workers.EventLoop,
	engine *tracker.Engine, router contract.EventHandler, monitoring *observability.MonitoringManager) *Orchestrator {
	return &Orchestrator{
		log:        log,
		supervisor: supervisor,
		loop:       loop,
		engine:     engine,
		router:     router,
		monitoring: monitoring,
	}
}

// Add registers workers started alongside the event loop.
func (o *Orchestrator) Add(worker ...contract.Worker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.workers = append(o.workers, worker...)
}

// Start runs the event loop and every added worker under the supervisor.
// It returns immediately, Stop waits for them.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	o.mu.Lock()
	o.cancel = cancel
	o.supervisor.Add(o.loop)
	o.supervisor.Add(o.workers...)
	done := make(chan struct{})
	o.done = done
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers", "workers", len(o.workers)+1)
	go func() {
		defer close(done)
		o.supervisor.Run(ctx)
	}()
}

// Handle submits one event to the loop without waiting for it to be handled.
func (o *Orchestrator) Handle(ctx context.Context, evt event.Event) error {
	return o.loop.Submit(ctx, func() {
		if err := o.router.Handle(ctx, evt); err != nil {
			o.log.Warn("Event rejected", "type", evt.Type, "error", err)
		}
	})
}

// Snapshot reads the engine state on the loop.
func (o *Orchestrator) Snapshot(ctx context.Context) (Snapshot, error) {
	snapshot, err := workers.Ask(ctx, o.loop, func() Snapshot {
		return Snapshot{
			Engine:  o.engine.Stats(),
			Away:    o.engine.ListAway(),
			Backlog: o.loop.Backlog(),
		}
	})
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Monitoring = o.monitoring.GetLatest()
	return snapshot, nil
}

// Stop cancels the pending relocations, then every worker.
// It waits for the workers unless ctx is done first.
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.mu.Lock()
	done, cancel := o.done, o.cancel
	o.mu.Unlock()
	if done == nil {
		return nil
	}

	if err := o.loop.Do(ctx, o.engine.Close); err != nil {
		o.log.Warn("Could not stop pending relocations", "error", err)
	}
	o.supervisor.Stop()
	cancel()

	select {
	case <-done:
		o.log.Info("Orchestrator stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
