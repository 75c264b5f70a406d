// Package domain contains core concepts of the presence guard.
// This file defines Participant identities and their live voice state.
// No runtime, network, or UI logic should be added here.
package domain

import "fmt"

type ParticipantID string

// LocationID identifies a voice channel. The empty value means "not connected".
type LocationID string

type ChannelID string

// VoiceState is the live presence of a participant as the platform reports it.
type VoiceState struct {
	SelfMuted  bool
	LocationID LocationID
}

func (v VoiceState) InVoice() bool {
	return v.LocationID != ""
}

// Author describes who wrote a message, as far as exemption rules are concerned.
type Author struct {
	ID      ParticipantID `json:"id"`
	IsBot   bool          `json:"is_bot"`
	IsAdmin bool          `json:"is_admin"`
	Roles   []string      `json:"roles"`
}

// Mention renders the platform mention markup for a participant.
func Mention(id ParticipantID) string {
	return fmt.Sprintf("<@%s>", id)
}
