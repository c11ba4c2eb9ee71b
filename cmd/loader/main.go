// Command loader polls the SpotterNetwork report feed, parses new spotter
// reports into structured weather events, and publishes them to the
// downstream event store. It also serves /healthz, /readyz, and /metrics.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/spotter-report-loader/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/spotter-report-loader/internal/adapter/kafka"
	"github.com/couchcryptid/spotter-report-loader/internal/adapter/spotternetwork"
	"github.com/couchcryptid/spotter-report-loader/internal/config"
	"github.com/couchcryptid/spotter-report-loader/internal/domain"
	"github.com/couchcryptid/spotter-report-loader/internal/observability"
	"github.com/couchcryptid/spotter-report-loader/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	feedClient := spotternetwork.NewClient(cfg, logger)
	store := kafkaadapter.NewWriter(cfg, logger)
	parser := domain.NewParser()

	poller := pipeline.New(feedClient, parser, store, logger, metrics, clockwork.NewRealClock(), cfg.PollInterval)

	srv := httpadapter.NewServer(cfg.HTTPAddr, poller, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("initializing",
		"feed_url", cfg.FeedURL,
		"poll_interval", cfg.PollInterval,
		"sink_topic", cfg.KafkaSinkTopic,
	)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the poll loop.
	go func() {
		if err := poller.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
