package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	assert.Nil(t, c.Get("missing"))

	c.Set("a", []byte(`{"total":50}`))
	assert.Equal(t, []byte(`{"total":50}`), c.Get("a"))

	c.Delete("a")
	assert.Nil(t, c.Get("a"))
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)

	c.Set("a", []byte("x"))
	time.Sleep(20 * time.Millisecond)

	assert.Nil(t, c.Get("a"))
}

func TestMemoryCacheDeletePrefix(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	c.Set("acct-1:2024-03-01", []byte("1"))
	c.Set("acct-1:2024-03-02", []byte("2"))
	c.Set("acct-2:2024-03-01", []byte("3"))

	c.DeletePrefix("acct-1:")

	assert.Nil(t, c.Get("acct-1:2024-03-01"))
	assert.Nil(t, c.Get("acct-1:2024-03-02"))
	assert.NotNil(t, c.Get("acct-2:2024-03-01"))
}

func TestMemoryCacheSweep(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)

	c.Set("a", []byte("x"))
	time.Sleep(20 * time.Millisecond)
	c.sweep()

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.Empty(t, c.entries)
}
