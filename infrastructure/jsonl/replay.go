package jsonl

import (
	"afk-sentinel/contract"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Scheduler is simulated time, clock.Fake in practice.
type Scheduler interface {
	Now() time.Time
	AdvanceTo(target time.Time)
}

// Play runs a scenario: before each line, time is advanced to start plus the
// line offset, firing every timer due on the way. Offsets going backwards do
// not rewind time. Events that fail to convert or to be handled are logged and skipped.
func Play(ctx context.Context, log *slog.Logger, source *Source, clock Scheduler, start time.Time,
	observer contract.Observer, handler contract.EventHandler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		envelope, err := source.NextEnvelope()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scenario line %d: %w", source.Line(), err)
		}
		offset, err := envelope.Offset()
		if err != nil {
			return fmt.Errorf("scenario line %d: %w", source.Line(), err)
		}
		if at := start.Add(offset); at.After(clock.Now()) {
			clock.AdvanceTo(at)
		}
		evt, err := envelope.Event(clock.Now())
		if err != nil {
			log.Warn("Skipping event", "line", source.Line(), "error", err)
			continue
		}
		if observer != nil {
			observer.Observe(evt)
		}
		if err := handler.Handle(ctx, evt); err != nil {
			log.Warn("Event rejected", "line", source.Line(), "error", err)
		}
	}
}
