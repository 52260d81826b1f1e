package repository

import (
	"context"
	"sync"
	"time"
)

// sweepInterval bounds how often Set walks the map for expired entries.
const sweepInterval = time.Minute

type cacheEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryCache is the in-process stand-in for RedisCache, used when no Redis is configured.
type MemoryCache struct {
	mu        sync.RWMutex
	data      map[string]cacheEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]cacheEntry),
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set stores value under key. Expired entries of other keys are dropped here too, at most
// once per sweepInterval, so keys that are never read again do not pile up.
func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	now := m.now()
	entry := cacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= sweepInterval {
		m.purgeExpired(now)
		m.lastSweep = now
	}
	m.data[key] = entry
	return nil
}

// purgeExpired must be called with mu held.
func (m *MemoryCache) purgeExpired(now time.Time) {
	for key, entry := range m.data {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(m.data, key)
		}
	}
}

// Len reports how many entries are held, including expired ones not yet swept.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
