package redis

import "time"

// Config holds the connection settings of the result cache backend.
type Config struct {
	// ConnectionURL uses the redis:// scheme, e.g. redis://:secret@localhost:6379/0.
	ConnectionURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`

	// ScanBatchSize is the COUNT hint used by DeletePrefix.
	ScanBatchSize int `env:"REDIS_SCAN_BATCH_SIZE" envDefault:"500"`
}
