//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"context"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type Timer interface {
	Stop() bool
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock is the only source of time and delayed callbacks for the trackers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	NewTicker(d time.Duration) Ticker
}

// Store holds one record per participant.
// Implementations are not required to be safe for concurrent use:
// the trackers only touch them from the event loop.
type Store[V any] interface {
	Get(id domain.ParticipantID) (V, bool, error)
	Set(id domain.ParticipantID, value V) error
	Delete(id domain.ParticipantID) error
	// Range stops as soon as fn returns false.
	Range(fn func(id domain.ParticipantID, value V) bool) error
	Len() (int, error)
}

// VoiceDirectory answers questions about the live state of participants.
type VoiceDirectory interface {
	CurrentVoiceState(ctx context.Context, id domain.ParticipantID) (domain.VoiceState, error)
	CanSuspend(ctx context.Context, id domain.ParticipantID) (domain.SuspendEligibility, error)
}

// Dispatcher executes outbound commands. Every method may fail on its own,
// failures are returned and never panic across the boundary.
type Dispatcher interface {
	SetLabel(ctx context.Context, id domain.ParticipantID, label string) error
	RestoreLabel(ctx context.Context, id domain.ParticipantID) error
	MoveParticipant(ctx context.Context, id domain.ParticipantID, target domain.LocationID) error
	PostMessage(ctx context.Context, channel domain.ChannelID, text string) error
	Suspend(ctx context.Context, id domain.ParticipantID, duration time.Duration, reason string) error
	ReplyToCommand(ctx context.Context, interactionID string, text string, visibility domain.Visibility) error
}

// Platform is everything the trackers need from the chat platform.
type Platform interface {
	VoiceDirectory
	Dispatcher
}

type EventHandler interface {
	Handle(ctx context.Context, evt event.Event) error
}

// Tasks are executed one at a time, in submission order.
type Executor interface {
	Post(task func()) bool
}

// EventSource yields inbound events one at a time. Next returns io.EOF once
// the source is exhausted.
type EventSource interface {
	Next(ctx context.Context) (event.Event, error)
}

// Observer sees every inbound event before the engine does.
// Adapters use it to keep their live view of voice states current.
type Observer interface {
	Observe(evt event.Event)
}
