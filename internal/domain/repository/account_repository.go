package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillboard/tillboard-api/internal/domain/entity"
	"github.com/tillboard/tillboard-api/pkg/pagination"
)

// AccountRepository defines the interface for Loyverse account data access
type AccountRepository interface {
	Create(ctx context.Context, account *entity.PosAccount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PosAccount, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.PosAccount, int64, error)
	Update(ctx context.Context, account *entity.PosAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
}
