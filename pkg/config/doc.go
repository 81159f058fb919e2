// Package config loads application configuration from environment variables.
//
// It combines github.com/joho/godotenv for .env files with
// github.com/caarlos0/env/v11 for struct tag parsing, and caches each parsed
// config type for the lifetime of the process:
//
//	var pgCfg pg.Config
//	config.MustLoad(&pgCfg)
//
// LoadEnv reads additional dotenv files; ResetCache and Reload exist for
// tests and for commands that change the environment at runtime.
package config
