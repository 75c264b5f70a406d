package e2e

import (
	"afk-sentinel/domain"
	"afk-sentinel/tracker"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testScenarioSuite struct {
	BaseSuite
	harness *Harness
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, &testScenarioSuite{})
}

func (s *testScenarioSuite) SetupTest() {
	s.harness = s.NewHarness(tracker.Settings{
		HoldingLocationID:     "afk",
		NotificationChannelID: "notices",
		RelocationDelay:       time.Minute,
		RateWindow:            10 * time.Second,
		WarnThreshold:         5,
		TimeoutThreshold:      7,
		WarnCooldown:          30 * time.Second,
		SuspensionDuration:    2 * time.Minute,
		ExemptRoles:           []string{"Moderator", "Admin"},
	})
}

func (s *testScenarioSuite) TestFullScenario() {
	h := s.harness
	s.Play(h, "scenario.jsonl")

	// --- STEP 1: ALICE COMES BACK IN TIME ---
	s.Step("Step 1: Alice's return restores the label and the original location", func() {
		s.Require().Equal([]domain.Command{
			domain.SetLabel{ParticipantID: "alice", Label: "[AFK] Alice"},
			domain.RestoreLabel{ParticipantID: "alice"},
			domain.MoveParticipant{ParticipantID: "alice", Target: "general"},
		}, CommandsFor(h, "alice"))
		s.Require().Contains(h.Platform.Messages(), "🔕 <@alice> is AFK (5s)")
		s.Require().Contains(h.Platform.Messages(), "✅ Alice is now active.")
	})

	// --- STEP 2: CAROL STAYS MUTED ---
	s.Step("Step 2: Carol is moved to the holding location after the delay", func() {
		s.Require().Equal([]domain.Command{
			domain.SetLabel{ParticipantID: "carol", Label: "[AFK] Carol"},
			domain.MoveParticipant{ParticipantID: "carol", Target: "afk"},
		}, CommandsFor(h, "carol"))
		s.Require().True(h.Engine.StatusOf("carol").IsAway)
	})

	// --- STEP 3: DAVE FLOODS ---
	s.Step("Step 3: Dave is warned once and suspended once", func() {
		s.Require().Equal([]domain.Command{
			domain.Suspend{ParticipantID: "dave", Duration: 2 * time.Minute, Reason: tracker.SuspensionReason},
		}, CommandsFor(h, "dave"))
		warnings := 0
		for _, text := range h.Platform.Messages() {
			if text == "⚠️ <@dave>, please slow down!" {
				warnings++
			}
		}
		s.Require().Equal(1, warnings)
	})

	// --- STEP 4: SLASH COMMANDS ---
	s.Step("Step 4: Commands are answered from the live state", func() {
		replies := h.Platform.OfKind(domain.ReplyToCommandKind)
		s.Require().Len(replies, 2)
		s.Require().Equal(domain.ReplyToCommand{
			InteractionID: "i1",
			Text:          "**AFK Users:**\n🔕 Carol - 10s",
			Visibility:    domain.Private,
		}, replies[0])
		s.Require().Equal(domain.ReplyToCommand{
			InteractionID: "i2",
			Text:          "📄 **Status for <@dave>**:\n🔕 AFK: No\n⏳ Timeout: Active (1m 13s left)\n",
			Visibility:    domain.Private,
		}, replies[1])
	})
}
