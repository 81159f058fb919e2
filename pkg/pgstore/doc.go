// Package pgstore implements feature.FlagStore and tenant.Provider on
// PostgreSQL through pgx/v5.
//
// The schema ships as embedded goose migrations (Migrations), applied with
// pg.Migrate. Override writes use the version column for compare-and-swap:
// ReplaceOverrides only touches the row when the version still matches and
// reports feature.ErrVersionConflict otherwise.
package pgstore
