package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"psychrometer/internal/api"
	"psychrometer/internal/api/handler/v1handler"
	"psychrometer/internal/batch"
	"psychrometer/internal/calculator"
	"psychrometer/internal/config"
	"psychrometer/internal/worker"
	"psychrometer/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg, version))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupBatches connects to postgres and starts the batch workers. It is
// skipped when no JWT public key is configured since the batch endpoints
// would not be reachable.
func setupBatches(ctx context.Context, cfg *config.Config, calc calculator.Calculator) (batch.Service, func(ctx context.Context)) {
	if cfg.JWT.PublicKey == "" {
		logger.Info(ctx, "no JWT public key configured, batch endpoints disabled")

		return nil, func(context.Context) {}
	}

	pgsql, closeStrg := getPostgres(ctx, cfg)
	service := batch.New(pgsql, calc, batch.NewOptions(cfg))

	riverClient, err := worker.Start(ctx, pgsql.Pool, service, worker.Options{MaxWorkers: cfg.Batch.Workers})
	if err != nil {
		closeStrg()
		logger.Fatal(ctx, "could not start batch workers", zap.Error(err))
	}

	return service, func(ctx context.Context) {
		logger.Info(ctx, "stopping batch workers...")
		if err := riverClient.Stop(ctx); err != nil {
			logger.Error(ctx, "could not stop batch workers", zap.Error(err))
		}
		closeStrg()
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			calc := getCalculator(ctx, cfg)
			batches, stopBatches := setupBatches(ctx, cfg, calc)

			stopWebserver := setupServer(ctx, cfg, api.Deps{Deps: v1handler.Deps{
				Calculator: calc,
				Batches:    batches,
			}})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
			stopBatches(shutdownCtx)
		},
	}

	return cmd
}
