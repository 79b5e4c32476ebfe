// Package cache puts a read-through cache in front of visitor storage.
package cache

import (
	"context"
	"errors"
	"time"

	utilscache "github.com/umakantv/go-utils/cache"
	"go.uber.org/zap"

	"storefront/store"
)

const storageKeyPrefix = "storage:"

// Cache is the subset of cache operations the storage layer needs;
// a go-utils cache satisfies it
type Cache interface {
	Get(key string) (interface{}, error)
	Set(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error
}

// StorageCache wraps a durable store.Backend.
// Reads are served from the cache when possible; writes go to the backend
// first and then refresh the cache. Cache failures only cost a backend round trip.
type StorageCache struct {
	backend store.Backend
	cache   Cache
	ttl     time.Duration
	log     *zap.Logger
}

// NewStorageCache creates the read-through layer
func NewStorageCache(backend store.Backend, cache Cache, ttl time.Duration, log *zap.Logger) *StorageCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &StorageCache{backend: backend, cache: cache, ttl: ttl, log: log}
}

func cacheKey(visitorID, key string) string {
	return storageKeyPrefix + visitorID + ":" + key
}

// Get tries the cache, then the backend
func (s *StorageCache) Get(ctx context.Context, visitorID, key string) ([]byte, error) {
	ck := cacheKey(visitorID, key)
	if cached, err := s.cache.Get(ck); err == nil {
		switch v := cached.(type) {
		case string:
			return []byte(v), nil
		case []byte:
			return v, nil
		}
		s.log.Debug("unexpected cached value type, falling back to storage", zap.String("key", ck))
	}

	value, err := s.backend.Get(ctx, visitorID, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Debug("storage read failed", zap.String("key", ck), zap.Error(err))
		}
		return nil, err
	}
	if err := s.cache.Set(ck, string(value), s.ttl); err != nil {
		s.log.Debug("cache fill failed", zap.String("key", ck), zap.Error(err))
	}
	return value, nil
}

// Set writes through to the backend and refreshes the cache
func (s *StorageCache) Set(ctx context.Context, visitorID, key string, value []byte) error {
	ck := cacheKey(visitorID, key)
	if err := s.backend.Set(ctx, visitorID, key, value); err != nil {
		s.cache.Delete(ck)
		return err
	}
	if err := s.cache.Set(ck, string(value), s.ttl); err != nil {
		s.log.Debug("cache refresh failed", zap.String("key", ck), zap.Error(err))
		s.cache.Delete(ck)
	}
	return nil
}

// Delete removes the value from both layers
func (s *StorageCache) Delete(ctx context.Context, visitorID, key string) error {
	s.cache.Delete(cacheKey(visitorID, key))
	return s.backend.Delete(ctx, visitorID, key)
}

var _ Cache = (utilscache.Cache)(nil)
