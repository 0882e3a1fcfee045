package repository

import (
	"context"

	"github.com/tillboard/tillboard-api/internal/domain/entity"
)

// CacheRepository defines the interface for the persistent takings cache tier.
// Get returns nil for both a missing and an expired key.
type CacheRepository interface {
	Get(ctx context.Context, key string) (*entity.CacheEntry, error)
	Set(ctx context.Context, entry *entity.CacheEntry) error
	DeleteByAccount(ctx context.Context, accountID string) error
	DeleteExpired(ctx context.Context) error
}
