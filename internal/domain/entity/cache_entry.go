package entity

import (
	"time"

	"github.com/google/uuid"
)

// CacheEntry stores a computed takings payload for one (account, window) key.
// It is the persistent tier of the takings cache; the in-process tier lives in
// internal/infrastructure/cache.
type CacheEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key       string    `gorm:"uniqueIndex;size:255;not null"` // account id + store + window
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Payload   string    `gorm:"type:text;not null"` // JSON-encoded takings + meta
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for CacheEntry
func (CacheEntry) TableName() string {
	return "cache_entries"
}

// IsExpired checks if the cache entry has expired
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}
