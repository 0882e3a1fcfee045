package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillboard/tillboard-api/internal/domain/entity"
	"github.com/tillboard/tillboard-api/internal/domain/repository"
	"github.com/tillboard/tillboard-api/pkg/apperror"
	"github.com/tillboard/tillboard-api/pkg/pagination"
)

// AccountService manages a user's connected Loyverse accounts
type AccountService struct {
	accountRepo    repository.AccountRepository
	takingsService *TakingsService
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repository.AccountRepository, takingsService *TakingsService) *AccountService {
	return &AccountService{
		accountRepo:    accountRepo,
		takingsService: takingsService,
	}
}

// CreateAccountInput represents account creation input
type CreateAccountInput struct {
	Name        string
	AccessToken string
	StoreID     string
}

// Create connects a new Loyverse account for a user
func (s *AccountService) Create(ctx context.Context, userID uuid.UUID, input *CreateAccountInput) (*entity.PosAccount, error) {
	account := &entity.PosAccount{
		UserID:      userID,
		Name:        input.Name,
		AccessToken: input.AccessToken,
		StoreID:     input.StoreID,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Get returns one account owned by the user
func (s *AccountService) Get(ctx context.Context, userID, accountID uuid.UUID) (*entity.PosAccount, error) {
	return s.ownedAccount(ctx, userID, accountID)
}

// List returns the user's accounts, paginated
func (s *AccountService) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.PosAccount], error) {
	params.Validate()

	accounts, total, err := s.accountRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(accounts, params.Page, params.PerPage, total), nil
}

// UpdateAccountInput represents account update input. Nil fields are left
// unchanged.
type UpdateAccountInput struct {
	Name        *string
	AccessToken *string
	StoreID     *string
}

// Update modifies an account and invalidates its cached takings
func (s *AccountService) Update(ctx context.Context, userID, accountID uuid.UUID, input *UpdateAccountInput) (*entity.PosAccount, error) {
	account, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.AccessToken != nil {
		account.AccessToken = *input.AccessToken
	}
	if input.StoreID != nil {
		account.StoreID = *input.StoreID
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.takingsService.InvalidateAccount(ctx, account.ID)
	return account, nil
}

// Delete removes an account and its cached takings
func (s *AccountService) Delete(ctx context.Context, userID, accountID uuid.UUID) error {
	account, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}

	if err := s.accountRepo.Delete(ctx, account.ID); err != nil {
		return err
	}

	s.takingsService.InvalidateAccount(ctx, account.ID)
	return nil
}

func (s *AccountService) ownedAccount(ctx context.Context, userID, accountID uuid.UUID) (*entity.PosAccount, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Account")
	}
	if account.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return account, nil
}
