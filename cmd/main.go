// Package main provides the CLI entrypoint for the psychrometer service.
// It wires subcommands (serve, migrate, jwt, calc, stream, telemetry), loads
// configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"psychrometer/internal/calculator"
	"psychrometer/internal/config"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/metrics"
	"psychrometer/pkg/storage/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint: gochecknoglobals

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getCalculator builds the engine from the config and wraps it with the
// calculation metrics registered on the default registry.
func getCalculator(ctx context.Context, cfg *config.Config) calculator.Calculator {
	engine, err := cfg.NewEngine()
	if err != nil {
		logger.Fatal(ctx, "could not create psychrometric engine", zap.Error(err))
	}
	logger.Info(ctx, "psychrometric engine ready", zap.Stringer("config", engine.Config()))

	return calculator.New(engine, metrics.NewCalculator(prometheus.DefaultRegisterer))
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "psychrometer",
		Short: "Psychrometric property calculations for moist air",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	configPath := fs.String("c", "config.yml", "The config file path")
	_ = fs.Parse(configArgs(os.Args[1:]))

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	if err := logger.SetupWithLevel(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not set up logger: ", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		serveCommand(cfg),
		JWTCommand(cfg),
		calcCommand(cfg),
		streamCommand(cfg),
		telemetryCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(exitCode(err)) //nolint: gocritic
	}
}

// configArgs keeps only the -c/--config flag so the standard flag package
// does not stop at subcommand flags.
func configArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "-c" || a == "--config" || a == "-config":
			if i+1 < len(args) {
				out = append(out, "-c", args[i+1])
				i++
			}
		case len(a) > 3 && a[:3] == "-c=":
			out = append(out, a)
		case len(a) > 9 && a[:9] == "--config=":
			out = append(out, "-c="+a[9:])
		}
	}

	return out
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
