package feature_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/akademate/pkg/feature"
)

func TestBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 97},
		{"ab", 5},
		{"tenant-1", 34},
		{"3f2b8c1e-9d4a-4e6b-8f1a-2c3d4e5f6a7b", 3},
		{"11111111-1111-1111-1111-111111111111", 88},
		{"00000000-0000-0000-0000-000000000001", 97},
		{"é", 33},
		{"😀", 99},
		{"a😀", 16},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, feature.Bucket(tt.in))
		})
	}
}

func TestBucket_Range(t *testing.T) {
	t.Parallel()

	for range 1000 {
		id := uuid.NewString()
		b := feature.Bucket(id)
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, 100)
		assert.Equal(t, b, feature.Bucket(id))
	}
}

func BenchmarkBucket(b *testing.B) {
	id := uuid.NewString()
	for b.Loop() {
		feature.Bucket(id)
	}
}
