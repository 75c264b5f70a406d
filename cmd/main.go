package main

import (
	"afk-sentinel/clock"
	"afk-sentinel/infrastructure/jsonl"
	"afk-sentinel/internal"
	"afk-sentinel/observability"
	"afk-sentinel/repositories"
	"afk-sentinel/runtime"
	"afk-sentinel/runtime/workers"
	"afk-sentinel/services"
	"afk-sentinel/tracker"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the lifecycle, and centralizes error reporting.
// Every defer (store and file cleanup) runs before the program exits.
func run() error {
	// 1. Configuration & Logger
	// A missing .env file is fine, the environment alone may be enough
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Stores
	stores, closeStores, err := openStores(config, log)
	if err != nil {
		return err
	}
	defer closeStores()

	// 3. Streams of the stdio bridge
	in, closeIn, err := openInput(config.EventsFile)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openOutput(config.CommandsFile)
	if err != nil {
		return err
	}
	defer closeOut()

	// 4. Engine, all of it driven by the event loop
	monitoring := observability.NewMonitoringManager(log)
	loop := workers.NewEventLoop(log, config.EventBufferSize)
	loopClock := clock.OnExecutor(clock.Real{}, loop)
	bridge := jsonl.NewBridge(log, out, clock.Real{}, config.Protected(), config.CanSuspend)
	engine := tracker.NewEngine(log, loopClock, bridge, stores, monitoring, config.Settings())
	commands := services.NewCommandService(log, engine, bridge, monitoring)
	router := runtime.NewRouter(log, engine, commands, loopClock)

	// 5. Supervision & Orchestration
	sup := workers.NewSupervisor(log, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(log, sup, loop, engine, router, monitoring)
	orchestrator.Add(
		workers.NewIngestionWorker(log, jsonl.NewSource(log, in, clock.Real{}), loop, router, bridge),
		workers.NewSweeperWorker(log, clock.Real{}, loop, func() { engine.Sweep() }, config.SweepInterval),
		workers.NewHeartbeatWorker(log, monitoring, loop.Backlog, config.HeartbeatInterval),
	)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	orchestrator.Start(ctx)

	// 7. Health server
	errChan := make(chan error, 1)
	health := internal.NewHealthServer(log, config.Address(), func(ctx context.Context) (any, error) {
		return orchestrator.Snapshot(ctx)
	}, 2*time.Second)
	if err := health.Start(errChan); err != nil {
		return err
	}

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := health.Shutdown(shutdownCtx); err != nil {
		log.Warn("Health server shutdown failed", "error", err)
	}
	if err := orchestrator.Stop(shutdownCtx); err != nil {
		log.Warn("Workers did not stop in time", "error", err)
	}
	log.Info("Program stopped cleanly")
	return nil
}

func openStores(config internal.Config, log *slog.Logger) (repositories.Stores, func(), error) {
	if config.StoreBackend != internal.BadgerBackend {
		return repositories.NewMemoryStores(), func() {}, nil
	}
	db, err := repositories.OpenBadger(config.BadgerFilepath)
	if err != nil {
		return repositories.Stores{}, nil, err
	}
	log.Info("Using badger store", "path", config.BadgerFilepath, "in_memory", config.BadgerFilepath == "")
	return repositories.NewBadgerStores(db, log), func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("events file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("commands file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
