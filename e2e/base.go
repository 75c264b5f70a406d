package e2e

import (
	"afk-sentinel/clock"
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/infrastructure/jsonl"
	"afk-sentinel/infrastructure/recorder"
	"afk-sentinel/observability"
	"afk-sentinel/repositories"
	"afk-sentinel/runtime"
	"afk-sentinel/services"
	"afk-sentinel/tracker"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type BaseSuite struct {
	suite.Suite
	Config Config
	log    *slog.Logger
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	color.Enable = s.Config.Colours
	s.log = logs.GetLoggerFromString(s.Config.LogLevel)
}

// Harness is the engine on simulated time with a recording platform,
// wired like the replay command.
type Harness struct {
	Clock      *clock.Fake
	Platform   *recorder.Recorder
	Engine     *tracker.Engine
	Monitoring *observability.MonitoringManager
	Router     contract.EventHandler
}

func (s *BaseSuite) NewHarness(settings tracker.Settings) *Harness {
	fake := clock.NewFake(epoch)
	platform := recorder.New(fake)
	monitoring := observability.NewMonitoringManager(s.log)
	engine := tracker.NewEngine(s.log, fake, platform, repositories.NewMemoryStores(), monitoring, settings)
	s.T().Cleanup(engine.Close)
	commands := services.NewCommandService(s.log, engine, platform, monitoring)
	return &Harness{
		Clock:      fake,
		Platform:   platform,
		Engine:     engine,
		Monitoring: monitoring,
		Router:     runtime.NewRouter(s.log, engine, commands, fake),
	}
}

// Play replays a scenario file of the scenario directory.
func (s *BaseSuite) Play(h *Harness, name string) {
	f, err := os.Open(filepath.Join(s.Config.ScenarioDir, name))
	s.Require().NoError(err)
	defer f.Close()

	source := jsonl.NewSource(s.log, f, h.Clock)
	s.Require().NoError(jsonl.Play(context.Background(), s.log, source, h.Clock, epoch, h.Platform, h.Router))
	if s.Config.DebugJSON {
		for _, entry := range h.Platform.Entries() {
			body, _ := json.Marshal(entry.Command)
			s.T().Logf("%s %s %s", entry.At.Sub(epoch), entry.Command.Kind(), body)
		}
	}
}

// Step runs fn as a named subtest under a colorized header.
func (s *BaseSuite) Step(name string, fn func()) {
	s.Run(name, func() {
		header := fmt.Sprintf("  ====== %s ======", name)
		if s.Config.Colours {
			header = color.New(color.BgBlack, color.FgGreen).Render(header)
		}
		s.T().Log(header)
		fn()
	})
}

// CommandsFor keeps the commands aimed at one participant.
func CommandsFor(h *Harness, id domain.ParticipantID) []domain.Command {
	var out []domain.Command
	for _, cmd := range h.Platform.Commands() {
		switch c := cmd.(type) {
		case domain.SetLabel:
			if c.ParticipantID == id {
				out = append(out, c)
			}
		case domain.RestoreLabel:
			if c.ParticipantID == id {
				out = append(out, c)
			}
		case domain.MoveParticipant:
			if c.ParticipantID == id {
				out = append(out, c)
			}
		case domain.Suspend:
			if c.ParticipantID == id {
				out = append(out, c)
			}
		}
	}
	return out
}
