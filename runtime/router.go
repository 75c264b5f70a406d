// Package runtime wires the engine to its execution context: the event loop,
// the supervised workers, and the routing of inbound events.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain/event"
	"afk-sentinel/errors"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var _ contract.EventHandler = (*Router)(nil)

// Router sends presence and message events to the engine and commands to the command service.
// It must run on the event loop.
type Router struct {
	log      *slog.Logger
	engine   contract.EventHandler
	commands contract.EventHandler
	now      func() time.Time
}

func NewRouter(log *slog.Logger, engine, commands contract.EventHandler, clock contract.Clock) *Router {
	return &Router{log: log, engine: engine, commands: commands, now: clock.Now}
}

func (r *Router) Handle(ctx context.Context, evt event.Event) error {
	log := r.log.With("event_id", uuid.NewString(), "type", evt.Type)

	var err error
	switch evt.Type {
	case event.PresenceChangedType, event.MessageReceivedType:
		err = r.engine.Handle(ctx, evt)
	case event.CommandInvokedType:
		err = r.commands.Handle(ctx, evt)
	default:
		err = fmt.Errorf("%w: %s", errors.ErrUnknownEvent, evt.Type)
	}
	if err != nil {
		log.Debug("Event not handled", "error", err)
		return err
	}
	if !evt.CreatedAt.IsZero() {
		log.Debug("Event handled", "lag", r.now().Sub(evt.CreatedAt))
	}
	return nil
}
