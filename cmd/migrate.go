package main

import (
	"context"
	"database/sql"
	"fmt"

	root "psychrometer"
	"psychrometer/internal/config"
	"psychrometer/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateSchema applies the embedded goose migrations of the batches table.
func migrateSchema(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(root.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, root.MigrationsDir); err != nil {
		return fmt.Errorf("could not apply batches migrations: %w", err)
	}

	return nil
}

// migrateRiver brings the river queue tables to the version shipped with the
// linked river release. It returns the version the tables are at afterwards.
func migrateRiver(ctx context.Context, db *sql.DB) (int, error) {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return 0, fmt.Errorf("could not create river migrator: %w", err)
	}

	all := migrator.AllVersions()
	latest := all[len(all)-1].Version

	existing, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not read river migrations: %w", err)
	}
	if len(existing) > 0 && existing[len(existing)-1].Version >= latest {
		return latest, nil
	}

	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
		TargetVersion: latest,
	}); err != nil {
		return 0, fmt.Errorf("could not apply river migrations: %w", err)
	}

	return latest, nil
}

// migrateCommand constructs the 'migrate' subcommand that applies the batches
// schema with goose and then brings the river queue tables up to date.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the batches database to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			skipRiver, _ := cmd.Flags().GetBool("skip-river")

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db, ok := strg.DB.(*sql.DB)
			if !ok {
				logger.Fatal(ctx, "postgres storage is not backed by *sql.DB")
			}

			if err := migrateSchema(ctx, db); err != nil {
				logger.Fatal(ctx, "could not migrate batches schema", zap.Error(err))
			}
			logger.Info(ctx, "batches schema is up to date")

			if skipRiver {
				return
			}

			version, err := migrateRiver(ctx, db)
			if err != nil {
				logger.Fatal(ctx, "could not migrate river queue tables", zap.Error(err))
			}
			logger.Info(ctx, "river queue tables are up to date", zap.Int("version", version))
		},
	}

	cmd.Flags().Bool("skip-river", false, "Only apply the batches schema")

	return cmd
}
