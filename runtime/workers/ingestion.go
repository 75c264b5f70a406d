package workers

import (
	"afk-sentinel/contract"
	"context"
	"errors"
	"io"
	"log/slog"
)

var _ contract.Worker = (*IngestionWorker)(nil)

// IngestionWorker pulls events from a source and hands each of them to the
// event loop. Observers see the event first, so the live platform view is
// already up to date when the engine handles it.
type IngestionWorker struct {
	log       *slog.Logger
	source    contract.EventSource
	loop      *EventLoop
	handler   contract.EventHandler
	observers []contract.Observer
}

func NewIngestionWorker(log *slog.Logger, source contract.EventSource, loop *EventLoop,
	handler contract.EventHandler, observers ...contract.Observer) *IngestionWorker {
	return &IngestionWorker{
		log:       log,
		source:    source,
		loop:      loop,
		handler:   handler,
		observers: observers,
	}
}

// Run returns nil once the source is exhausted.
// Any other read error is returned and the supervisor restarts the worker.
func (w *IngestionWorker) Run(ctx context.Context) error {
	w.log.Info("Starting ingestion worker")
	for {
		evt, err := w.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			w.log.Info("Event source exhausted")
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		for _, observer := range w.observers {
			observer.Observe(evt)
		}
		if err := w.loop.Submit(ctx, func() {
			if err := w.handler.Handle(ctx, evt); err != nil {
				w.log.Warn("Event rejected", "type", evt.Type, "error", err)
			}
		}); err != nil {
			w.log.Debug("Event loop unavailable, stopping ingestion", "error", err)
			return nil
		}
	}
}
