package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a context-aware key-value wrapper around a Redis client.
type Storage struct {
	db            redis.UniversalClient
	scanBatchSize int64
}

// NewStorage wraps redisClient with a default scan batch size of 500.
func NewStorage(redisClient redis.UniversalClient) *Storage {
	return &Storage{
		db:            redisClient,
		scanBatchSize: 500,
	}
}

// NewStorageWithConfig wraps redisClient using the scan settings from cfg.
func NewStorageWithConfig(redisClient redis.UniversalClient, cfg Config) *Storage {
	s := NewStorage(redisClient)
	if cfg.ScanBatchSize > 0 {
		s.scanBatchSize = int64(cfg.ScanBatchSize)
	}
	return s
}

// Get returns nil for empty keys and missing values.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorageOperation, err)
	}
	return val, nil
}

// Set stores key-value with expiration. Zero duration means no expiration.
func (s *Storage) Set(ctx context.Context, key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if err := s.db.Set(ctx, key, val, exp).Err(); err != nil {
		return errors.Join(ErrStorageOperation, err)
	}
	return nil
}

// Delete removes keys. Empty input is a no-op.
func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrStorageOperation, err)
	}
	return nil
}

// Incr atomically increments the integer stored at key, starting from zero.
func (s *Storage) Incr(ctx context.Context, key string) (int64, error) {
	n, err := s.db.Incr(ctx, key).Result()
	if err != nil {
		return 0, errors.Join(ErrStorageOperation, err)
	}
	return n, nil
}

// DeletePrefix removes every key starting with prefix.
// Keys are discovered with SCAN so the server is never blocked.
func (s *Storage) DeletePrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return ErrEmptyPrefix
	}

	var cursor uint64
	for {
		batch, next, err := s.db.Scan(ctx, cursor, prefix+"*", s.scanBatchSize).Result()
		if err != nil {
			return errors.Join(ErrStorageOperation, err)
		}
		if err := s.Delete(ctx, batch...); err != nil {
			return err
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close terminates the Redis connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}
