package pgstore

import "embed"

// Migrations holds the goose migrations creating the flag service schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations holding the SQL files.
const MigrationsDir = "migrations"
