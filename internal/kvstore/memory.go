package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

// Memory keeps values in a process-local freecache. Nothing survives a
// restart, and a single value may not exceed 1/1024 of the cache size.
type Memory struct {
	cache *freecache.Cache
}

func NewMemory(sizeMB int) *Memory {
	return &Memory{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	value, err := m.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("memory get %s: %w", key, err)
	}
	return value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	// 0 => no expiration
	if err := m.cache.Set([]byte(key), value, 0); err != nil {
		return fmt.Errorf("memory set %s (%d bytes): %w", key, len(value), err)
	}
	return nil
}

// Ping always succeeds, there is nothing to reach.
func (m *Memory) Ping(context.Context) error {
	return nil
}
