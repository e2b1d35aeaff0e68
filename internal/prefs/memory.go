package prefs

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryBackend keeps preferences in process memory. Entries never expire.
type MemoryBackend struct {
	cache *cache.Cache
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{cache: cache.New(cache.NoExpiration, 0)}
}

func (b *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	if x, found := b.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (b *MemoryBackend) Set(_ context.Context, key, value string) error {
	b.cache.Set(key, value, cache.NoExpiration)
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.cache.Delete(key)
	return nil
}
