package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/akademate/pkg/pg"
	"github.com/dmitrymomot/akademate/pkg/pgstore"
)

func migrateCommand() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			a := &app{log: log}
			defer a.close()
			if _, err := a.connectPostgres(ctx); err != nil {
				return err
			}

			if down {
				err = pg.Rollback(ctx, a.pool, pgstore.Migrations, pgstore.MigrationsDir, a.pgCfg, log)
			} else {
				err = runMigrations(ctx, a)
			}
			if err != nil {
				return err
			}

			version, err := pg.SchemaVersion(ctx, a.pool, a.pgCfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the latest migration instead")
	return cmd
}

func runMigrations(ctx context.Context, a *app) error {
	if err := pg.Migrate(ctx, a.pool, pgstore.Migrations, pgstore.MigrationsDir, a.pgCfg, a.log); err != nil {
		return err
	}
	a.log.InfoContext(ctx, "migrations applied", slog.String("table", a.pgCfg.MigrationsTable))
	return nil
}
