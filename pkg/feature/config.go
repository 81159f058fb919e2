package feature

import (
	"fmt"
	"time"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds the feature registry settings read from the environment.
type Config struct {
	Storage       string         `env:"FLAG_STORAGE" envDefault:"postgres"`
	SeedFile      string         `env:"FLAG_SEED_FILE"`
	SeedWatch     bool           `env:"FLAG_SEED_WATCH" envDefault:"false"`
	PlanRanks     map[string]int `env:"FLAG_PLAN_RANKS" envKeyValSeparator:":" envDefault:"starter:0,pro:1,enterprise:2"`
	StrictPlans   bool           `env:"FLAG_STRICT_PLANS" envDefault:"false"`
	Cache         string         `env:"FLAG_CACHE" envDefault:"none"`
	CacheTTL      time.Duration  `env:"FLAG_CACHE_TTL" envDefault:"5s"`
	CacheSize     int            `env:"FLAG_CACHE_SIZE" envDefault:"4096"`
	CachePrefix   string         `env:"FLAG_CACHE_PREFIX" envDefault:"feature:results:"`
	WriteAttempts int            `env:"FLAG_WRITE_ATTEMPTS" envDefault:"5"`
	LoadTimeout   time.Duration  `env:"FLAG_LOAD_TIMEOUT" envDefault:"10s"`
}

// CheckCache rejects cache backends that cannot see every write. The
// process-local memory cache is only allowed over memory storage.
func (c Config) CheckCache() error {
	switch c.Cache {
	case CacheNone, "", CacheRedis:
		return nil
	case CacheMemory:
		if c.Storage == StorageMemory {
			return nil
		}
		return fmt.Errorf("%w: cache %q requires %q storage, use %q with %q storage",
			ErrInvalidConfig, CacheMemory, StorageMemory, CacheRedis, c.Storage)
	}
	return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.Cache)
}

// Options translates the config into registry options. The result cache is
// not included because it depends on the chosen backend.
func (c Config) Options() []RegistryOption {
	opts := []RegistryOption{
		WithPlanRanks(PlanRanks(c.PlanRanks)),
		WithCacheTTL(c.CacheTTL),
		WithMaxWriteAttempts(c.WriteAttempts),
		WithLoadTimeout(c.LoadTimeout),
	}
	if c.StrictPlans {
		opts = append(opts, WithStrictPlans())
	}
	return opts
}
