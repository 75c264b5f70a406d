package services

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/domain/event"
	"afk-sentinel/errors"
	"afk-sentinel/observability"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const (
	NobodyAway = "✅ No users are currently AFK."
	Apology    = "❌ An error occurred while processing your command."
)

// AwayQueries is the read-only surface the commands answer from.
type AwayQueries interface {
	ListAway() []domain.AwayEntry
	StatusOf(id domain.ParticipantID) domain.Status
}

var _ contract.EventHandler = (*CommandService)(nil)

// CommandService answers the "afklist" and "status" commands.
type CommandService struct {
	log        *slog.Logger
	queries    AwayQueries
	dispatcher contract.Dispatcher
	monitoring *observability.MonitoringManager
}

func NewCommandService(log *slog.Logger, queries AwayQueries, dispatcher contract.Dispatcher,
	monitoring *observability.MonitoringManager) *CommandService {
	return &CommandService{log: log, queries: queries, dispatcher: dispatcher, monitoring: monitoring}
}

func (s *CommandService) Handle(ctx context.Context, evt event.Event) error {
	if evt.Type != event.CommandInvokedType {
		return fmt.Errorf("%w: %s", errors.ErrUnknownEvent, evt.Type)
	}
	cmd, ok := evt.Payload.(event.CommandInvoked)
	if !ok {
		return fmt.Errorf("%w: %T for %s", errors.ErrInvalidPayload, evt.Payload, evt.Type)
	}
	return s.HandleCommand(ctx, cmd)
}

// HandleCommand replies to one command. Any failure is answered with a
// generic apology, the detail only goes to the logs.
func (s *CommandService) HandleCommand(ctx context.Context, cmd event.CommandInvoked) error {
	var err error
	switch cmd.Name {
	case event.AfkListCommand:
		err = s.afkList(ctx, cmd)
	case event.StatusCommand:
		err = s.status(ctx, cmd)
	default:
		s.log.Debug("Ignoring unknown command", "command", cmd.Name)
		return fmt.Errorf("%w: %q", errors.ErrUnknownCommand, cmd.Name)
	}
	if err == nil {
		s.monitoring.Incr(observability.CommandsHandled)
		return nil
	}

	s.log.Error("Command error", "command", cmd.Name, "interaction", cmd.InteractionID, "error", err)
	s.monitoring.Incr(observability.CommandFailures)
	if replyErr := s.dispatcher.ReplyToCommand(ctx, cmd.InteractionID, Apology, domain.Private); replyErr != nil {
		s.log.Warn("Could not send apology", "interaction", cmd.InteractionID, "error", replyErr)
	}
	return err
}

func (s *CommandService) afkList(ctx context.Context, cmd event.CommandInvoked) error {
	entries := s.queries.ListAway()
	if len(entries) == 0 {
		return s.dispatcher.ReplyToCommand(ctx, cmd.InteractionID, NobodyAway, domain.Public)
	}
	return s.dispatcher.ReplyToCommand(ctx, cmd.InteractionID, FormatAwayList(entries), domain.Private)
}

func (s *CommandService) status(ctx context.Context, cmd event.CommandInvoked) error {
	target := domain.ParticipantID(strings.TrimSpace(cmd.Options[event.UserOption]))
	if target == "" {
		return fmt.Errorf("%w: %s", errors.ErrMissingOption, event.UserOption)
	}
	return s.dispatcher.ReplyToCommand(ctx, cmd.InteractionID, FormatStatus(s.queries.StatusOf(target)), domain.Private)
}

func FormatAwayList(entries []domain.AwayEntry) string {
	var b strings.Builder
	b.WriteString("**AFK Users:**")
	for _, entry := range entries {
		fmt.Fprintf(&b, "\n🔕 %s - %s", entry.DisplayName, domain.FormatDuration(entry.Duration))
	}
	return b.String()
}

func FormatStatus(status domain.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 **Status for %s**:\n", domain.Mention(status.ParticipantID))
	if status.IsAway {
		fmt.Fprintf(&b, "🔕 AFK: Yes (%s)\n", domain.FormatDuration(status.AwayDuration))
	} else {
		b.WriteString("🔕 AFK: No\n")
	}
	if status.IsSuspended {
		fmt.Fprintf(&b, "⏳ Timeout: Active (%s left)\n", domain.FormatDuration(status.SuspensionRemaining))
	} else {
		b.WriteString("⏳ Timeout: No\n")
	}
	return b.String()
}
