package event

import (
	"afk-sentinel/domain"
	"time"
)

type Type string

const (
	PresenceChangedType Type = "PRESENCE_CHANGED"
	MessageReceivedType Type = "MESSAGE_RECEIVED"
	CommandInvokedType  Type = "COMMAND_INVOKED"
)

// Event is the envelope of everything the platform adapter feeds in.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

func NewPresenceChanged(p PresenceChanged) Event {
	return Event{Type: PresenceChangedType, CreatedAt: time.Now().UTC(), Payload: p}
}

func NewMessageReceived(m MessageReceived) Event {
	return Event{Type: MessageReceivedType, CreatedAt: time.Now().UTC(), Payload: m}
}

func NewCommandInvoked(c CommandInvoked) Event {
	return Event{Type: CommandInvokedType, CreatedAt: time.Now().UTC(), Payload: c}
}

// PresenceChanged reports a voice state update. LocationID is the channel the
// participant is in after the update, empty when disconnected.
type PresenceChanged struct {
	ParticipantID     domain.ParticipantID `json:"participant_id"`
	DisplayName       string               `json:"display_name"`
	PreviousSelfMuted bool                 `json:"previous_self_muted"`
	CurrentSelfMuted  bool                 `json:"current_self_muted"`
	LocationID        domain.LocationID    `json:"location_id"`
}

func (p PresenceChanged) BecameAway() bool {
	return !p.PreviousSelfMuted && p.CurrentSelfMuted
}

func (p PresenceChanged) BecameActive() bool {
	return p.PreviousSelfMuted && !p.CurrentSelfMuted
}

type MessageReceived struct {
	MessageID string                 `json:"message_id"`
	ChannelID domain.ChannelID       `json:"channel_id"`
	Author    domain.Author          `json:"author"`
	At        time.Time              `json:"at"`
	Mentions  []domain.ParticipantID `json:"mentions"`
}

const (
	AfkListCommand = "afklist"
	StatusCommand  = "status"

	// UserOption is the participant argument of the status command.
	UserOption = "user"
)

type CommandInvoked struct {
	InteractionID string               `json:"interaction_id"`
	Name          string               `json:"name"`
	Invoker       domain.ParticipantID `json:"invoker"`
	Options       map[string]string    `json:"options"`
}
