package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const LivenessText = "AFK Bot is live!"

// StatsProvider returns what /healthz exposes.
type StatsProvider func(ctx context.Context) (any, error)

// HealthServer answers the liveness probe on / and the JSON stats on /healthz.
type HealthServer struct {
	log    *slog.Logger
	server *http.Server
}

func NewHealthServer(log *slog.Logger, address string, stats StatsProvider, timeout time.Duration) *HealthServer {
	return &HealthServer{
		log: log,
		server: &http.Server{
			Addr:              address,
			Handler:           NewHealthHandler(log, stats, timeout),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func NewHealthHandler(log *slog.Logger, stats StatsProvider, timeout time.Duration) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, LivenessText)
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		body := map[string]any{"status": "ok"}
		status := http.StatusOK
		if stats != nil {
			data, err := stats(ctx)
			if err != nil {
				log.Warn("Could not collect stats", "error", err)
				body["status"] = "degraded"
				body["error"] = err.Error()
				status = http.StatusServiceUnavailable
			} else {
				body["stats"] = data
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
	return mux
}

// Start listens right away and serves in the background.
// Serve errors other than a clean shutdown are sent to errChan.
func (s *HealthServer) Start(errChan chan<- error) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	go func() {
		s.log.Info("Starting health server", "address", listener.Addr().String())
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("health server error: %w", err)
		}
	}()
	return nil
}

func (s *HealthServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
