package cache

import (
	"sync"
	"time"
)

// MemoryCache is the in-process tier of the takings cache. Entries carry
// their own expiry; a background janitor sweeps stale ones so an idle key
// does not pin its payload forever.
type MemoryCache struct {
	entries map[string]*memoryEntry
	mu      sync.RWMutex
	ttl     time.Duration
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryCache creates a memory cache with the given entry TTL and starts
// the sweep goroutine.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
	}

	go c.sweepLoop()

	return c
}

// Get returns the cached payload for key, or nil if absent or expired.
func (c *MemoryCache) Get(key string) []byte {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry.payload
}

// Set stores payload under key with the configured TTL.
func (c *MemoryCache) Set(key string, payload []byte) {
	c.mu.Lock()
	c.entries[key] = &memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Delete removes key if present.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// DeletePrefix removes every key with the given prefix. Used when an account
// is updated or removed and all of its cached windows must go.
func (c *MemoryCache) DeletePrefix(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *MemoryCache) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.sweep()
	}
}

func (c *MemoryCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
