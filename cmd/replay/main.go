// Command replay runs a scenario of JSON lines through the engine on simulated
// time and prints every command the engine issued.
package main

import (
	"afk-sentinel/clock"
	"afk-sentinel/domain"
	"afk-sentinel/infrastructure/jsonl"
	"afk-sentinel/infrastructure/recorder"
	"afk-sentinel/observability"
	"afk-sentinel/repositories"
	"afk-sentinel/runtime"
	"afk-sentinel/services"
	"afk-sentinel/tracker"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gookit/color"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Config of the replay. Engine settings default to the production ones.
type Config struct {
	LogLevel              string        `envconfig:"LOG_LEVEL" default:"WARN"`
	Colours               bool          `envconfig:"REPLAY_COLOURS" default:"true"`
	HoldingLocationID     string        `envconfig:"HOLDING_LOCATION_ID" default:"afk"`
	NotificationChannelID string        `envconfig:"NOTIFICATION_CHANNEL_ID" default:"notices"`
	RelocationDelay       time.Duration `envconfig:"RELOCATION_DELAY" default:"1m"`
	RateWindow            time.Duration `envconfig:"RATE_WINDOW" default:"10s"`
	WarnThreshold         int           `envconfig:"WARN_THRESHOLD" default:"5"`
	TimeoutThreshold      int           `envconfig:"TIMEOUT_THRESHOLD" default:"7"`
	WarnCooldown          time.Duration `envconfig:"WARN_COOLDOWN" default:"30s"`
	SuspensionDuration    time.Duration `envconfig:"SUSPENSION_DURATION" default:"2m"`
	ExemptRoles           []string      `envconfig:"EXEMPT_ROLES" default:"Moderator,Admin"`
	AwayLabelPrefix       string        `envconfig:"AWAY_LABEL_PREFIX" default:"[AFK]"`
	ProtectedParticipants []string      `envconfig:"PROTECTED_PARTICIPANTS"`
	CanSuspend            bool          `envconfig:"CAN_SUSPEND" default:"true"`
}

func (c Config) Settings() tracker.Settings {
	return tracker.Settings{
		HoldingLocationID:     domain.LocationID(c.HoldingLocationID),
		NotificationChannelID: domain.ChannelID(c.NotificationChannelID),
		RelocationDelay:       c.RelocationDelay,
		RateWindow:            c.RateWindow,
		WarnThreshold:         c.WarnThreshold,
		TimeoutThreshold:      c.TimeoutThreshold,
		WarnCooldown:          c.WarnCooldown,
		SuspensionDuration:    c.SuspensionDuration,
		ExemptRoles:           c.ExemptRoles,
		AwayLabelPrefix:       c.AwayLabelPrefix,
	}
}

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	scenario := flag.String("scenario", "", "Path to the scenario (JSON lines)")
	until := flag.Duration("until", 0, "Simulated time to let pass after the last line")
	flag.Parse()
	if *scenario == "" {
		return fmt.Errorf("-scenario is required")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	color.Enable = config.Colours
	log := logs.GetLoggerFromString(config.LogLevel)

	f, err := os.Open(*scenario)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	defer f.Close()

	fake := clock.NewFake(start)
	platform := recorder.New(fake)
	for _, id := range config.ProtectedParticipants {
		platform.SetEligibility(domain.ParticipantID(id), domain.HierarchyViolation)
	}
	if !config.CanSuspend {
		platform.SetDefaultEligibility(domain.MissingPermission)
	}
	monitoring := observability.NewMonitoringManager(log)
	engine := tracker.NewEngine(log, fake, platform, repositories.NewMemoryStores(), monitoring, config.Settings())
	defer engine.Close()
	commands := services.NewCommandService(log, engine, platform, monitoring)
	router := runtime.NewRouter(log, engine, commands, fake)

	source := jsonl.NewSource(log, f, fake)
	if err := jsonl.Play(context.Background(), log, source, fake, start, platform, router); err != nil {
		return err
	}
	fake.Advance(*until)

	renderCommands(platform.Entries())
	renderCounters(monitoring.GetLatest().Counters)
	return nil
}

func renderCommands(entries []recorder.Entry) {
	table := newTable([]string{"At", "Kind", "Target", "Detail"})
	for _, entry := range entries {
		target, detail := describe(entry.Command)
		table.Append([]string{
			domain.FormatDuration(entry.At.Sub(start)),
			paint(entry.Command.Kind()),
			target,
			detail,
		})
	}
	table.Render()
}

func renderCounters(counters map[observability.Counter]uint64) {
	names := make([]string, 0, len(counters))
	for name, value := range counters {
		if value > 0 {
			names = append(names, string(name))
		}
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)
	fmt.Println()
	table := newTable([]string{"Counter", "Value"})
	for _, name := range names {
		table.Append([]string{name, fmt.Sprint(counters[observability.Counter(name)])})
	}
	table.Render()
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func describe(cmd domain.Command) (string, string) {
	switch c := cmd.(type) {
	case domain.SetLabel:
		return string(c.ParticipantID), c.Label
	case domain.RestoreLabel:
		return string(c.ParticipantID), ""
	case domain.MoveParticipant:
		return string(c.ParticipantID), "-> " + string(c.Target)
	case domain.PostMessage:
		return "#" + string(c.Channel), c.Text
	case domain.Suspend:
		return string(c.ParticipantID), fmt.Sprintf("%s (%s)", domain.FormatDuration(c.Duration), c.Reason)
	case domain.ReplyToCommand:
		return c.InteractionID, fmt.Sprintf("[%s] %s", c.Visibility, c.Text)
	default:
		return "", fmt.Sprintf("%v", cmd)
	}
}

func paint(kind domain.CommandKind) string {
	switch kind {
	case domain.SuspendKind:
		return color.New(color.BgBlack, color.FgRed).Render(string(kind))
	case domain.MoveParticipantKind:
		return color.New(color.BgBlack, color.FgYellow).Render(string(kind))
	case domain.PostMessageKind, domain.ReplyToCommandKind:
		return color.New(color.BgBlack, color.FgGreen).Render(string(kind))
	default:
		return color.New(color.BgBlack, color.FgCyan).Render(string(kind))
	}
}
