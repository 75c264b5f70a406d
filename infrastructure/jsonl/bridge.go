package jsonl

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

var (
	_ contract.Platform = (*Bridge)(nil)
	_ contract.Observer = (*Bridge)(nil)
)

// Output is one outbound line.
type Output struct {
	At      time.Time          `json:"at"`
	Kind    domain.CommandKind `json:"kind"`
	Command domain.Command     `json:"command"`
}

// Bridge is a platform behind a pair of streams. Its voice view is built
// from the presence events it observes, and it writes every command as a line.
// Protected participants stand for members above the bot in the role hierarchy.
type Bridge struct {
	mu          sync.Mutex
	log         *slog.Logger
	clock       contract.Clock
	encoder     *json.Encoder
	voice       map[domain.ParticipantID]domain.VoiceState
	protected   map[domain.ParticipantID]struct{}
	canModerate bool
}

func NewBridge(log *slog.Logger, w io.Writer, clock contract.Clock,
	protected []domain.ParticipantID, canModerate bool) *Bridge {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return &Bridge{
		log:     log,
		clock:   clock,
		encoder: encoder,
		voice:   make(map[domain.ParticipantID]domain.VoiceState),
		protected: lo.SliceToMap(protected, func(id domain.ParticipantID) (domain.ParticipantID, struct{}) {
			return id, struct{}{}
		}),
		canModerate: canModerate,
	}
}

func (b *Bridge) Observe(evt event.Event) {
	p, ok := evt.Payload.(event.PresenceChanged)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.voice[p.ParticipantID] = domain.VoiceState{SelfMuted: p.CurrentSelfMuted, LocationID: p.LocationID}
}

func (b *Bridge) CurrentVoiceState(_ context.Context, id domain.ParticipantID) (domain.VoiceState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.voice[id], nil
}

func (b *Bridge) CanSuspend(_ context.Context, id domain.ParticipantID) (domain.SuspendEligibility, error) {
	if !b.canModerate {
		return domain.MissingPermission, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.protected[id]; ok {
		return domain.HierarchyViolation, nil
	}
	return domain.Eligible, nil
}

func (b *Bridge) SetLabel(ctx context.Context, id domain.ParticipantID, label string) error {
	return b.write(ctx, domain.SetLabel{ParticipantID: id, Label: label})
}

func (b *Bridge) RestoreLabel(ctx context.Context, id domain.ParticipantID) error {
	return b.write(ctx, domain.RestoreLabel{ParticipantID: id})
}

func (b *Bridge) MoveParticipant(ctx context.Context, id domain.ParticipantID, target domain.LocationID) error {
	if err := b.write(ctx, domain.MoveParticipant{ParticipantID: id, Target: target}); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	state := b.voice[id]
	state.LocationID = target
	b.voice[id] = state
	return nil
}

func (b *Bridge) PostMessage(ctx context.Context, channel domain.ChannelID, text string) error {
	return b.write(ctx, domain.PostMessage{Channel: channel, Text: text})
}

func (b *Bridge) Suspend(ctx context.Context, id domain.ParticipantID, duration time.Duration, reason string) error {
	return b.write(ctx, domain.Suspend{ParticipantID: id, Duration: duration, Reason: reason})
}

func (b *Bridge) ReplyToCommand(ctx context.Context, interactionID string, text string, visibility domain.Visibility) error {
	return b.write(ctx, domain.ReplyToCommand{InteractionID: interactionID, Text: text, Visibility: visibility})
}

func (b *Bridge) write(ctx context.Context, cmd domain.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.encoder.Encode(Output{At: b.clock.Now(), Kind: cmd.Kind(), Command: cmd}); err != nil {
		return fmt.Errorf("write %s: %w", cmd.Kind(), err)
	}
	b.log.Debug("Command sent", "kind", cmd.Kind())
	return nil
}
