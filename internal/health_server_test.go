package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	req := require.New(t)
	handler := NewHealthHandler(logs.GetLoggerFromLevel(slog.LevelDebug), nil, time.Second)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	req.Equal(http.StatusOK, rec.Code)
	req.Equal(LivenessText, rec.Body.String())
}

func TestHealthHandler_Stats(t *testing.T) {
	req := require.New(t)
	stats := func(ctx context.Context) (any, error) {
		return map[string]int{"away": 2}, nil
	}
	handler := NewHealthHandler(logs.GetLoggerFromLevel(slog.LevelDebug), stats, time.Second)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	req.Equal(http.StatusOK, rec.Code)
	var body struct {
		Status string         `json:"status"`
		Stats  map[string]int `json:"stats"`
	}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	req.Equal("ok", body.Status)
	req.Equal(2, body.Stats["away"])
}

func TestHealthHandler_StatsFailure(t *testing.T) {
	req := require.New(t)
	stats := func(ctx context.Context) (any, error) {
		return nil, fmt.Errorf("loop stopped")
	}
	handler := NewHealthHandler(logs.GetLoggerFromLevel(slog.LevelDebug), stats, time.Second)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	req.Equal(http.StatusServiceUnavailable, rec.Code)
	req.Contains(rec.Body.String(), `"degraded"`)
}

func TestHealthHandler_UnknownPath(t *testing.T) {
	req := require.New(t)
	handler := NewHealthHandler(logs.GetLoggerFromLevel(slog.LevelDebug), nil, time.Second)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	req.Equal(http.StatusNotFound, rec.Code)
}
