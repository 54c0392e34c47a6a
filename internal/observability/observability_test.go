package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/travel-suitability-service/internal/config"
)

func TestNewLogger_Levels(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		level    string
		format   string
		enabled  slog.Level
		disabled slog.Level
	}{
		{"debug", "text", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", "json", slog.LevelInfo, slog.LevelDebug},
		{"warning", "JSON", slog.LevelWarn, slog.LevelInfo},
		{"error", "TEXT", slog.LevelError, slog.LevelWarn},
		{"verbose", "", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(&config.Config{LogLevel: tt.level, LogFormat: tt.format})
			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.disabled))
			assert.Same(t, logger, slog.Default())
		})
	}
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.RegionsAssessed.WithLabelValues("best", "profile").Inc()
	a.ProfilesLoaded.Set(42)

	assert.InDelta(t, 1, testutil.ToFloat64(a.RegionsAssessed.WithLabelValues("best", "profile")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.RegionsAssessed.WithLabelValues("best", "profile")), 0)
	assert.InDelta(t, 42, testutil.ToFloat64(a.ProfilesLoaded), 0)
}
