package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"psychrometer/internal/adapter/mqtt"
	"psychrometer/internal/config"
	"psychrometer/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// telemetryCommand bridges station telemetry on MQTT to derived properties.
func telemetryCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Enriches MQTT station telemetry with derived properties",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			bridge := mqtt.NewBridge(getCalculator(ctx, cfg), mqtt.NewOptions(cfg))

			logger.Info(ctx, "connecting to mqtt broker...",
				zap.String("broker", cfg.MQTT.Broker),
				zap.String("topic", cfg.MQTT.Topic))
			if err := bridge.Connect(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				logger.Fatal(ctx, "could not connect to mqtt broker", zap.Error(err))
			}

			// wait for interrupt
			<-ctx.Done()
			logger.Info(ctx, "stopping telemetry bridge...")
			bridge.Disconnect()
		},
	}

	return cmd
}
