package domain

import "time"

type CommandKind string

const (
	SetLabelKind        CommandKind = "SET_LABEL"
	RestoreLabelKind    CommandKind = "RESTORE_LABEL"
	MoveParticipantKind CommandKind = "MOVE_PARTICIPANT"
	PostMessageKind     CommandKind = "POST_MESSAGE"
	SuspendKind         CommandKind = "SUSPEND"
	ReplyToCommandKind  CommandKind = "REPLY_TO_COMMAND"
)

// Command is an outbound action for the platform adapter.
// Adapters that queue or record actions use these values.
type Command interface {
	Kind() CommandKind
}

type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

type SetLabel struct {
	ParticipantID ParticipantID `json:"participant_id"`
	Label         string        `json:"label"`
}

type RestoreLabel struct {
	ParticipantID ParticipantID `json:"participant_id"`
}

type MoveParticipant struct {
	ParticipantID ParticipantID `json:"participant_id"`
	Target        LocationID    `json:"target"`
}

type PostMessage struct {
	Channel ChannelID `json:"channel"`
	Text    string    `json:"text"`
}

type Suspend struct {
	ParticipantID ParticipantID `json:"participant_id"`
	Duration      time.Duration `json:"duration_ns"`
	Reason        string        `json:"reason"`
}

type ReplyToCommand struct {
	InteractionID string     `json:"interaction_id"`
	Text          string     `json:"text"`
	Visibility    Visibility `json:"visibility"`
}

func (SetLabel) Kind() CommandKind        { return SetLabelKind }
func (RestoreLabel) Kind() CommandKind    { return RestoreLabelKind }
func (MoveParticipant) Kind() CommandKind { return MoveParticipantKind }
func (PostMessage) Kind() CommandKind     { return PostMessageKind }
func (Suspend) Kind() CommandKind         { return SuspendKind }
func (ReplyToCommand) Kind() CommandKind  { return ReplyToCommandKind }
