// FILE: internal/server/cache/memory.go
package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const sweepInterval = 1 * time.Minute

// Memory is an in-process Cache backed by an expiring map. It is the default
// backend for single-instance deployments and for tests.
type Memory struct {
	items *gocache.Cache
}

// NewMemory creates a memory cache. defaultTTL applies when Put is called
// with a non-positive ttl.
func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{
		items: gocache.New(defaultTTL, sweepInterval),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.items.Set(key, value, ttl)
	return nil
}

func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *Memory) InvalidateByPrefix(_ context.Context, prefix string) error {
	for key := range m.items.Items() {
		if strings.HasPrefix(key, prefix) {
			m.items.Delete(key)
		}
	}
	return nil
}

func (m *Memory) Close() error {
	m.items.Flush()
	return nil
}
