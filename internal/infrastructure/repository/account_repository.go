package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tillboard/tillboard-api/internal/domain/entity"
	domainRepo "github.com/tillboard/tillboard-api/internal/domain/repository"
	"github.com/tillboard/tillboard-api/pkg/pagination"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domainRepo.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.PosAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PosAccount, error) {
	var account entity.PosAccount
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.PosAccount, int64, error) {
	var accounts []entity.PosAccount
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PosAccount{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at ASC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&accounts).Error
	if err != nil {
		return nil, 0, err
	}

	return accounts, total, nil
}

func (r *accountRepository) Update(ctx context.Context, account *entity.PosAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.PosAccount{}, "id = ?", id).Error
}
