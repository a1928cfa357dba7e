package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/guaibalabs/weather-risk/internal/adapter/http"
	kafkaadapter "github.com/guaibalabs/weather-risk/internal/adapter/kafka"
	"github.com/guaibalabs/weather-risk/internal/adapter/openmeteo"
	"github.com/guaibalabs/weather-risk/internal/catalog"
	"github.com/guaibalabs/weather-risk/internal/config"
	"github.com/guaibalabs/weather-risk/internal/domain"
	"github.com/guaibalabs/weather-risk/internal/engine"
	"github.com/guaibalabs/weather-risk/internal/observability"
	"github.com/guaibalabs/weather-risk/internal/scheduler"
	"github.com/guaibalabs/weather-risk/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	policy, err := domain.PolicyByName(cfg.RiskPolicy)
	if err != nil {
		logger.Error("invalid risk policy", "error", err)
		os.Exit(1)
	}

	cities := catalog.New(cfg.CitiesCSVPath, cfg.AdminRegion)
	client := openmeteo.NewClient(openmeteo.Config{
		BaseURL: cfg.OpenMeteoBaseURL,
		Timeout: cfg.FetchTimeout,
	}, logger)
	reducer := domain.NewReducer(policy)

	agg := engine.New(cities, client, reducer, logger, metrics, cfg.FetchTimeout, cfg.FetchConcurrency)
	batches := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Publisher is feature-flagged via KAFKA_ENABLED.
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaSinkTopic, logger)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresh := func() {
		results, err := agg.Run(ctx)
		if err != nil {
			logger.Error("batch run failed", "error", err)
			return
		}
		batches.Save(store.Batch{Results: results, CompletedAt: domain.Clock().Now()})
		if publisher != nil {
			if err := publisher.PublishBatch(ctx, results); err != nil {
				logger.Error("kafka publish failed", "error", err)
			}
		}
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, agg, batches, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Run the first batch immediately, then refresh on the configured interval.
	go refresh()

	sched := scheduler.New(cfg.RefreshInterval, refresh, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	sched.Stop()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
