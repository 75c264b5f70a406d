// Package recorder is an in-memory platform. It keeps a live view of voice
// states and records every outbound command instead of executing it.
// The replay tool and the engine tests run against it.
package recorder

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
)

var (
	_ contract.Platform = (*Recorder)(nil)
	_ contract.Observer = (*Recorder)(nil)
)

// Entry is one recorded command with the clock time it was issued at.
type Entry struct {
	At      time.Time
	Command domain.Command
}

type Recorder struct {
	mu          sync.Mutex
	clock       contract.Clock
	voice       map[domain.ParticipantID]domain.VoiceState
	labels      map[domain.ParticipantID]string
	eligibility map[domain.ParticipantID]domain.SuspendEligibility
	defaultElig domain.SuspendEligibility
	failures    map[domain.CommandKind]error
	voiceErr    error
	entries     []Entry
}

func New(clock contract.Clock) *Recorder {
	return &Recorder{
		clock:       clock,
		voice:       make(map[domain.ParticipantID]domain.VoiceState),
		labels:      make(map[domain.ParticipantID]string),
		eligibility: make(map[domain.ParticipantID]domain.SuspendEligibility),
		defaultElig: domain.Eligible,
		failures:    make(map[domain.CommandKind]error),
	}
}

// Observe updates the live voice state from a presence event.
func (r *Recorder) Observe(evt event.Event) {
	p, ok := evt.Payload.(event.PresenceChanged)
	if !ok {
		return
	}
	r.SetVoiceState(p.ParticipantID, domain.VoiceState{SelfMuted: p.CurrentSelfMuted, LocationID: p.LocationID})
}

func (r *Recorder) SetVoiceState(id domain.ParticipantID, state domain.VoiceState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.voice[id] = state
}

// SetEligibility overrides the suspension answer for a single participant.
func (r *Recorder) SetEligibility(id domain.ParticipantID, eligibility domain.SuspendEligibility) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.eligibility[id] = eligibility
}

// SetDefaultEligibility is the answer for every participant without an override.
func (r *Recorder) SetDefaultEligibility(eligibility domain.SuspendEligibility) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultElig = eligibility
}

// FailOn makes every command of that kind fail with err. A nil err clears it.
// Failed commands are still recorded.
func (r *Recorder) FailOn(kind domain.CommandKind, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failures, kind)
		return
	}
	r.failures[kind] = err
}

// FailVoiceLookups makes CurrentVoiceState and CanSuspend fail with err.
func (r *Recorder) FailVoiceLookups(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.voiceErr = err
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

func (r *Recorder) Commands() []domain.Command {
	return lo.Map(r.Entries(), func(entry Entry, _ int) domain.Command {
		return entry.Command
	})
}

func (r *Recorder) OfKind(kind domain.CommandKind) []domain.Command {
	return lo.Filter(r.Commands(), func(cmd domain.Command, _ int) bool {
		return cmd.Kind() == kind
	})
}

// Messages returns the text of every posted message, in order.
func (r *Recorder) Messages() []string {
	return lo.FilterMap(r.Commands(), func(cmd domain.Command, _ int) (string, bool) {
		post, ok := cmd.(domain.PostMessage)
		return post.Text, ok
	})
}

func (r *Recorder) Label(id domain.ParticipantID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	label, ok := r.labels[id]
	return label, ok
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

func (r *Recorder) CurrentVoiceState(_ context.Context, id domain.ParticipantID) (domain.VoiceState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.voiceErr != nil {
		return domain.VoiceState{}, r.voiceErr
	}
	return r.voice[id], nil
}

func (r *Recorder) CanSuspend(_ context.Context, id domain.ParticipantID) (domain.SuspendEligibility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.voiceErr != nil {
		return domain.MissingPermission, r.voiceErr
	}
	if eligibility, ok := r.eligibility[id]; ok {
		return eligibility, nil
	}
	return r.defaultElig, nil
}

func (r *Recorder) SetLabel(_ context.Context, id domain.ParticipantID, label string) error {
	return r.record(domain.SetLabel{ParticipantID: id, Label: label}, func() {
		r.labels[id] = label
	})
}

func (r *Recorder) RestoreLabel(_ context.Context, id domain.ParticipantID) error {
	return r.record(domain.RestoreLabel{ParticipantID: id}, func() {
		delete(r.labels, id)
	})
}

// MoveParticipant also moves the participant in the live view.
func (r *Recorder) MoveParticipant(_ context.Context, id domain.ParticipantID, target domain.LocationID) error {
	return r.record(domain.MoveParticipant{ParticipantID: id, Target: target}, func() {
		state := r.voice[id]
		state.LocationID = target
		r.voice[id] = state
	})
}

func (r *Recorder) PostMessage(_ context.Context, channel domain.ChannelID, text string) error {
	return r.record(domain.PostMessage{Channel: channel, Text: text}, nil)
}

func (r *Recorder) Suspend(_ context.Context, id domain.ParticipantID, duration time.Duration, reason string) error {
	return r.record(domain.Suspend{ParticipantID: id, Duration: duration, Reason: reason}, nil)
}

func (r *Recorder) ReplyToCommand(_ context.Context, interactionID string, text string, visibility domain.Visibility) error {
	return r.record(domain.ReplyToCommand{InteractionID: interactionID, Text: text, Visibility: visibility}, nil)
}

// record appends the command, then applies its effect unless a failure is injected.
func (r *Recorder) record(cmd domain.Command, apply func()) error {
	now := r.clock.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{At: now, Command: cmd})
	if err, ok := r.failures[cmd.Kind()]; ok {
		return err
	}
	if apply != nil {
		apply()
	}
	return nil
}
