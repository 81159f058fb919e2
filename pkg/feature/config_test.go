package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/akademate/pkg/feature"
)

func TestConfig_CheckCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		storage string
		cache   string
		wantErr bool
	}{
		{"no cache over postgres", feature.StoragePostgres, feature.CacheNone, false},
		{"redis over postgres", feature.StoragePostgres, feature.CacheRedis, false},
		{"memory over memory", feature.StorageMemory, feature.CacheMemory, false},
		{"memory over postgres", feature.StoragePostgres, feature.CacheMemory, true},
		{"unknown backend", feature.StorageMemory, "memcached", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := feature.Config{Storage: tt.storage, Cache: tt.cache}.CheckCache()
			if tt.wantErr {
				assert.ErrorIs(t, err, feature.ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}
