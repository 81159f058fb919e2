// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config (populated from PG_* environment
// variables), retrying while the database is still starting. Migrate and
// Rollback run goose migrations read from an fs.FS, typically an embed.FS
// owned by the package defining the schema:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, pgstore.Migrations, pgstore.MigrationsDir, cfg, log); err != nil {
//		return err
//	}
//
// Healthcheck adapts the pool to a readiness probe. IsNotFoundError and
// IsDuplicateKeyError classify driver errors.
package pg
