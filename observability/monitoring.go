package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

type Counter string

const (
	AwayTransitions    Counter = "away_transitions"
	ActiveTransitions  Counter = "active_transitions"
	Relocations        Counter = "relocations"
	RelocationFailures Counter = "relocation_failures"
	RelocationSkipped  Counter = "relocation_skipped"
	Warnings           Counter = "warnings"
	Suspensions        Counter = "suspensions"
	SuspensionRefusals Counter = "suspension_refusals"
	SuspensionFailures Counter = "suspension_failures"
	IgnoredMessages    Counter = "ignored_messages"
	MentionReplies     Counter = "mention_replies"
	CommandsHandled    Counter = "commands_handled"
	CommandFailures    Counter = "command_failures"
	PlatformFailures   Counter = "platform_failures"
	StoreFailures      Counter = "store_failures"
	SweptSuspensions   Counter = "swept_suspensions"
	SweptWindows       Counter = "swept_windows"
)

var allCounters = []Counter{
	AwayTransitions, ActiveTransitions,
	Relocations, RelocationFailures, RelocationSkipped,
	Warnings, Suspensions, SuspensionRefusals, SuspensionFailures,
	IgnoredMessages, MentionReplies,
	CommandsHandled, CommandFailures,
	PlatformFailures, StoreFailures,
	SweptSuspensions, SweptWindows,
}

// MonitoringStats is what the health endpoint exposes
type MonitoringStats struct {
	Counters map[Counter]uint64 `json:"counters"`
	Uptime   string             `json:"uptime"`

	// --- PROCESS METRICS ---
	RssBytes   uint64  `json:"rss_bytes"`
	CpuPercent float64 `json:"cpu_percent"`

	// --- GO RUNTIME METRICS ---
	AllocMemMb uint64 `json:"alloc_mem_mb"`
	NumGC      uint32 `json:"num_gc"`
	Goroutines int    `json:"goroutines"`
}

// MonitoringManager counts what the trackers did since start.
// Counters are safe for concurrent use.
type MonitoringManager struct {
	log       *slog.Logger
	startedAt time.Time
	counters  map[Counter]*atomic.Uint64

	mu   sync.Mutex
	self *process.Process
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	counters := make(map[Counter]*atomic.Uint64, len(allCounters))
	for _, c := range allCounters {
		counters[c] = new(atomic.Uint64)
	}
	return &MonitoringManager{log: log, startedAt: time.Now(), counters: counters}
}

func (mm *MonitoringManager) Incr(c Counter) {
	mm.Add(c, 1)
}

func (mm *MonitoringManager) Add(c Counter, n uint64) {
	counter, ok := mm.counters[c]
	if !ok {
		mm.log.Warn("Unknown counter", "counter", c)
		return
	}
	counter.Add(n)
}

func (mm *MonitoringManager) Get(c Counter) uint64 {
	counter, ok := mm.counters[c]
	if !ok {
		return 0
	}
	return counter.Load()
}

// GetLatest collects the counters and the process statistics.
// A failure to read process statistics only leaves those fields empty.
func (mm *MonitoringManager) GetLatest() MonitoringStats {
	stats := MonitoringStats{
		Counters:   make(map[Counter]uint64, len(mm.counters)),
		Uptime:     time.Since(mm.startedAt).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
	}
	for name, counter := range mm.counters {
		stats.Counters[name] = counter.Load()
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.AllocMemMb = m.Alloc / 1024 / 1024
	stats.NumGC = m.NumGC

	rss, cpu, err := mm.selfStats()
	if err != nil {
		mm.log.Debug("Failed to collect self stats", "error", err)
		return stats
	}
	stats.RssBytes = rss
	stats.CpuPercent = cpu
	return stats
}

func (mm *MonitoringManager) selfStats() (uint64, float64, error) {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if mm.self == nil {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			return 0, 0, err
		}
		mm.self = p
	}
	memInfo, err := mm.self.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := mm.self.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
