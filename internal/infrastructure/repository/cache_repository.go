package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tillboard/tillboard-api/internal/domain/entity"
	domainRepo "github.com/tillboard/tillboard-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cacheRepository struct {
	db *gorm.DB
}

// NewCacheRepository creates a new persistent cache repository
func NewCacheRepository(db *gorm.DB) domainRepo.CacheRepository {
	return &cacheRepository{db: db}
}

func (r *cacheRepository) Get(ctx context.Context, key string) (*entity.CacheEntry, error) {
	var entry entity.CacheEntry
	err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if entry.IsExpired() {
		return nil, nil
	}
	return &entry, nil
}

func (r *cacheRepository) Set(ctx context.Context, entry *entity.CacheEntry) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "created_at"}),
	}).Create(entry).Error
}

func (r *cacheRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).Delete(&entity.CacheEntry{}, "account_id = ?", accountID).Error
}

func (r *cacheRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&entity.CacheEntry{}, "expires_at < ?", time.Now()).Error
}
