package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"psychrometer/internal/adapter/kafka"
	"psychrometer/internal/config"
	"psychrometer/internal/pipeline"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// streamCommand runs the Kafka enrichment pipeline until interrupted. Health,
// readiness and metrics are served on kafka.healthAddr.
func streamCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Enriches raw readings from Kafka and publishes derived readings",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			calc := getCalculator(ctx, cfg)

			reader := kafka.NewReader(cfg)
			writer := kafka.NewWriter(cfg)
			defer func() {
				if err := reader.Close(); err != nil {
					logger.Warn(ctx, "could not close kafka reader", zap.Error(err))
				}
				if err := writer.Close(); err != nil {
					logger.Warn(ctx, "could not close kafka writer", zap.Error(err))
				}
			}()

			p := pipeline.New(
				reader,
				pipeline.NewEnricher(calc, clockwork.NewRealClock()),
				writer,
				metrics.NewPipeline(prometheus.DefaultRegisterer),
				pipeline.NewOptions(cfg),
			)

			healthServer := &http.Server{
				Addr:              cfg.Kafka.HealthAddr,
				Handler:           pipeline.HealthHandler(p, prometheus.DefaultGatherer),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				logger.Info(ctx, "starting health server...", zap.String("addr", cfg.Kafka.HealthAddr))
				if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error(ctx, "could not start health server", zap.Error(err))
				}
			}()

			logger.Info(ctx, "starting stream pipeline...",
				zap.Strings("brokers", cfg.Kafka.Brokers),
				zap.String("source", cfg.Kafka.SourceTopic),
				zap.String("sink", cfg.Kafka.SinkTopic))
			if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error(ctx, "stream pipeline stopped", zap.Error(err))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			logger.Info(ctx, "stopping health server...")
			if err := healthServer.Shutdown(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop health server", zap.Error(err))
			}
		},
	}

	return cmd
}
