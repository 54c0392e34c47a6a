package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/travel-suitability-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/travel-suitability-service/internal/adapter/kafka"
	"github.com/couchcryptid/travel-suitability-service/internal/adapter/mapbox"
	"github.com/couchcryptid/travel-suitability-service/internal/config"
	"github.com/couchcryptid/travel-suitability-service/internal/domain"
	"github.com/couchcryptid/travel-suitability-service/internal/observability"
	"github.com/couchcryptid/travel-suitability-service/internal/pipeline"
	"github.com/couchcryptid/travel-suitability-service/internal/profiles"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	store, err := profiles.Load(cfg.ProfilesPath)
	if err != nil {
		logger.Error("failed to load profiles", "path", cfg.ProfilesPath, "error", err)
		os.Exit(1)
	}
	metrics.ProfilesLoaded.Set(float64(store.Len()))
	logger.Info("profiles loaded", "path", cfg.ProfilesPath, "count", store.Len(), "source", store.Meta().Source)

	thresholds, err := profiles.LoadThresholds(cfg.ThresholdsPath)
	if err != nil {
		logger.Error("failed to load thresholds", "path", cfg.ThresholdsPath, "error", err)
		os.Exit(1)
	}

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	assessor := domain.NewAssessor(thresholds, domain.DefaultHazardRules(), geocoder, logger)
	transformer := pipeline.NewTransformer(assessor, store, metrics, logger, cfg.RatingConcurrency)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, transformer, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
