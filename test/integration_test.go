package test

import (
	"afk-sentinel/clock"
	"afk-sentinel/domain"
	"afk-sentinel/infrastructure/jsonl"
	"afk-sentinel/observability"
	"afk-sentinel/repositories"
	"afk-sentinel/runtime"
	"afk-sentinel/runtime/workers"
	"afk-sentinel/services"
	"afk-sentinel/tracker"
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var scenario = strings.Join([]string{
	`{"type":"presence","presence":{"participant_id":"alice","display_name":"Alice","previous_self_muted":false,"current_self_muted":true,"location_id":"general"}}`,
	`{"type":"message","message":{"message_id":"m1","channel_id":"chat","author":{"id":"spammer"}}}`,
	`{"type":"message","message":{"message_id":"m2","channel_id":"chat","author":{"id":"spammer"}}}`,
	`{"type":"message","message":{"message_id":"m3","channel_id":"chat","author":{"id":"spammer"}}}`,
	`{"type":"message","message":{"message_id":"m4","channel_id":"chat","author":{"id":"spammer"}}}`,
	`{"type":"command","command":{"interaction_id":"i1","name":"afklist","invoker":"bob"}}`,
}, "\n")

func testSettings() tracker.Settings {
	return tracker.Settings{
		HoldingLocationID:     "afk",
		NotificationChannelID: "notices",
		RelocationDelay:       100 * time.Millisecond,
		RateWindow:            time.Minute,
		WarnThreshold:         2,
		TimeoutThreshold:      3,
		WarnCooldown:          time.Minute,
		SuspensionDuration:    time.Minute,
	}
}

// startStack wires the stack the way the service does, reading input
// through the ingestion worker, and stops it when the test ends.
func startStack(t *testing.T, input string) (*syncBuffer, *runtime.Orchestrator) {
	t.Helper()
	req := require.New(t)
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := repositories.OpenBadger("")
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })
	stores := repositories.NewBadgerStores(db, log)

	out := &syncBuffer{}
	monitoring := observability.NewMonitoringManager(log)
	loop := workers.NewEventLoop(log, 16)
	loopClock := clock.OnExecutor(clock.Real{}, loop)
	bridge := jsonl.NewBridge(log, out, clock.Real{}, nil, true)
	engine := tracker.NewEngine(log, loopClock, bridge, stores, monitoring, testSettings())
	commands := services.NewCommandService(log, engine, bridge, monitoring)
	router := runtime.NewRouter(log, engine, commands, loopClock)

	supervisor := workers.NewSupervisor(log, 50*time.Millisecond)
	orchestrator := runtime.NewOrchestrator(log, supervisor, loop, engine, router, monitoring)
	orchestrator.Add(workers.NewIngestionWorker(log,
		jsonl.NewSource(log, strings.NewReader(input), clock.Real{}), loop, router, bridge))

	orchestrator.Start(ctx)
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		require.NoError(t, orchestrator.Stop(stopCtx))
	})
	return out, orchestrator
}

// Test_Scenario runs the whole stack: stdio bridge, event loop, supervisor
// and badger stores, on the real clock with short delays.
func Test_Scenario(t *testing.T) {
	req := require.New(t)
	out, orchestrator := startStack(t, scenario)

	// 1. The spammer is suspended once, the command answered
	req.Eventually(func() bool {
		return strings.Contains(out.String(), `"kind":"SUSPEND"`) &&
			strings.Contains(out.String(), `"kind":"REPLY_TO_COMMAND"`)
	}, 2*time.Second, 10*time.Millisecond)
	req.Equal(1, strings.Count(out.String(), `"kind":"SUSPEND"`))
	req.Contains(out.String(), `"text":"**AFK Users:**\n🔕 Alice - 0s"`)

	// 2. Alice is moved once the delay elapsed
	req.Eventually(func() bool {
		return strings.Contains(out.String(), `"kind":"MOVE_PARTICIPANT"`)
	}, 2*time.Second, 10*time.Millisecond)
	req.Contains(out.String(), `"target":"afk"`)

	snapshot, err := orchestrator.Snapshot(context.Background())
	req.NoError(err)
	req.Equal(tracker.EngineStats{Away: 1, Suspended: 1}, snapshot.Engine)
	req.Len(snapshot.Away, 1)
	req.Equal(uint64(1), snapshot.Monitoring.Counters[observability.IgnoredMessages])
}

// Test_BadInputIsSkipped feeds an oversized line and broken lines ahead of a
// valid event: ingestion goes on and the event still reaches the engine.
func Test_BadInputIsSkipped(t *testing.T) {
	req := require.New(t)
	input := strings.Join([]string{
		`{"type":"presence","presence":{"display_name":"` + strings.Repeat("x", 2*1024*1024) + `"}}`,
		`{not json`,
		`{"type":"presence"}`,
		`{"type":"unknown","presence":{"participant_id":"ghost"}}`,
		`{"type":"presence","presence":{"participant_id":"alice","display_name":"Alice","previous_self_muted":false,"current_self_muted":true,"location_id":"general"}}`,
	}, "\n")
	out, orchestrator := startStack(t, input)

	req.Eventually(func() bool {
		return strings.Contains(out.String(), `"label":"[AFK] Alice"`)
	}, 2*time.Second, 10*time.Millisecond)

	snapshot, err := orchestrator.Snapshot(context.Background())
	req.NoError(err)
	req.Equal(1, snapshot.Engine.Away)
	req.Equal([]string{"Alice"}, lo.Map(snapshot.Away, func(entry domain.AwayEntry, _ int) string {
		return entry.DisplayName
	}))
}
