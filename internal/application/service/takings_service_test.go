package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillboard/tillboard-api/internal/domain/entity"
	"github.com/tillboard/tillboard-api/internal/infrastructure/cache"
	"github.com/tillboard/tillboard-api/internal/loyverse"
	"github.com/tillboard/tillboard-api/pkg/apperror"
	"github.com/tillboard/tillboard-api/pkg/pagination"
)

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.PosAccount
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.PosAccount) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PosAccount, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) ListByUser(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.PosAccount, int64, error) {
	var accounts []entity.PosAccount
	for _, a := range f.accounts {
		if a.UserID == userID {
			accounts = append(accounts, *a)
		}
	}
	return accounts, int64(len(accounts)), nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *entity.PosAccount) error {
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.accounts, id)
	return nil
}

type fakeCacheRepo struct {
	entries map[string]*entity.CacheEntry
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (*entity.CacheEntry, error) {
	entry, ok := f.entries[key]
	if !ok || entry.IsExpired() {
		return nil, nil
	}
	return entry, nil
}

func (f *fakeCacheRepo) Set(ctx context.Context, entry *entity.CacheEntry) error {
	f.entries[entry.Key] = entry
	return nil
}

func (f *fakeCacheRepo) DeleteByAccount(ctx context.Context, accountID string) error {
	for key, entry := range f.entries {
		if entry.AccountID.String() == accountID {
			delete(f.entries, key)
		}
	}
	return nil
}

func (f *fakeCacheRepo) DeleteExpired(ctx context.Context) error { return nil }

type fakeLoyverse struct {
	receipts     []loyverse.Receipt
	receiptsErr  error
	stores       []loyverse.Store
	storesErr    error
	receiptCalls int
}

func (f *fakeLoyverse) ListReceipts(ctx context.Context, storeID string, since time.Time) ([]loyverse.Receipt, error) {
	f.receiptCalls++
	if f.receiptsErr != nil {
		return nil, f.receiptsErr
	}
	return f.receipts, nil
}

func (f *fakeLoyverse) ListStores(ctx context.Context) ([]loyverse.Store, error) {
	return f.stores, f.storesErr
}

func (f *fakeLoyverse) ListCategories(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func (f *fakeLoyverse) ListItems(ctx context.Context) ([]loyverse.Item, error) {
	return nil, nil
}

type takingsFixture struct {
	service   *TakingsService
	accounts  *fakeAccountRepo
	cacheRepo *fakeCacheRepo
	memory    *cache.MemoryCache
	upstream  *fakeLoyverse
	userID    uuid.UUID
	accountID uuid.UUID
}

func newTakingsFixture(t *testing.T) *takingsFixture {
	t.Helper()

	userID := uuid.New()
	account := &entity.PosAccount{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Main cafe",
		AccessToken: "token",
		StoreID:     "store-1",
	}

	accounts := &fakeAccountRepo{accounts: map[uuid.UUID]*entity.PosAccount{account.ID: account}}
	cacheRepo := &fakeCacheRepo{entries: map[string]*entity.CacheEntry{}}
	memory := cache.NewMemoryCache(time.Minute)
	upstream := &fakeLoyverse{}

	svc := &TakingsService{
		accountRepo: accounts,
		cacheRepo:   cacheRepo,
		memory:      memory,
		databaseTTL: time.Hour,
		newClient:   func(accessToken string) loyverseAPI { return upstream },
	}

	return &takingsFixture{
		service:   svc,
		accounts:  accounts,
		cacheRepo: cacheRepo,
		memory:    memory,
		upstream:  upstream,
		userID:    userID,
		accountID: account.ID,
	}
}

func TestGetDailyTakingsAggregatesUpstreamReceipts(t *testing.T) {
	f := newTakingsFixture(t)
	f.upstream.receipts = []loyverse.Receipt{
		saleReceipt("2024-03-01", 50, loyverse.Payment{Type: "cash", MoneyAmount: 50}),
		saleReceipt("2024-03-02", 30, loyverse.Payment{Type: "card", MoneyAmount: 30}),
	}

	result, err := f.service.GetDailyTakings(context.Background(), f.userID, &GetTakingsInput{
		AccountID: f.accountID,
		StartDate: "2024-03-01",
	})

	require.NoError(t, err)
	require.Len(t, result.Takings, 2)
	assert.Equal(t, "2024-03-02", result.Takings[0].Date)
	assert.Equal(t, 2, result.Meta.ReceiptCount)
	assert.Equal(t, CacheTierNone, result.Meta.Cache)
}

func TestGetDailyTakingsServesMemoryCache(t *testing.T) {
	f := newTakingsFixture(t)
	f.upstream.receipts = []loyverse.Receipt{saleReceipt("2024-03-01", 50)}

	input := &GetTakingsInput{AccountID: f.accountID, StartDate: "2024-03-01"}

	_, err := f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)

	result, err := f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)

	assert.Equal(t, 1, f.upstream.receiptCalls)
	assert.Equal(t, CacheTierMemory, result.Meta.Cache)
	assert.Equal(t, 1, result.Meta.ReceiptCount)
}

func TestGetDailyTakingsFallsBackToDatabaseTier(t *testing.T) {
	f := newTakingsFixture(t)
	f.upstream.receipts = []loyverse.Receipt{saleReceipt("2024-03-01", 50)}

	input := &GetTakingsInput{AccountID: f.accountID, StartDate: "2024-03-01"}

	_, err := f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)

	// Simulate a process restart: the memory tier is empty, the database
	// tier still holds the entry and repopulates memory on the way out.
	f.memory.DeletePrefix("")

	result, err := f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)
	assert.Equal(t, 1, f.upstream.receiptCalls)
	assert.Equal(t, CacheTierDatabase, result.Meta.Cache)

	result, err = f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)
	assert.Equal(t, CacheTierMemory, result.Meta.Cache)
}

func TestGetDailyTakingsRefreshBypassesCache(t *testing.T) {
	f := newTakingsFixture(t)
	f.upstream.receipts = []loyverse.Receipt{saleReceipt("2024-03-01", 50)}

	input := &GetTakingsInput{AccountID: f.accountID, StartDate: "2024-03-01"}

	_, err := f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)

	input.Refresh = true
	result, err := f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)

	assert.Equal(t, 2, f.upstream.receiptCalls)
	assert.Equal(t, CacheTierNone, result.Meta.Cache)
}

func TestGetDailyTakingsEmptyWindowSucceeds(t *testing.T) {
	f := newTakingsFixture(t)

	result, err := f.service.GetDailyTakings(context.Background(), f.userID, &GetTakingsInput{
		AccountID: f.accountID,
		StartDate: "2024-03-01",
	})

	// "No receipts in this window" is a success, not a failure.
	require.NoError(t, err)
	assert.Empty(t, result.Takings)
	assert.Equal(t, 0, result.Meta.ReceiptCount)
}

func TestGetDailyTakingsUpstreamFailure(t *testing.T) {
	f := newTakingsFixture(t)
	f.upstream.receiptsErr = &loyverse.APIError{Endpoint: "/receipts", StatusCode: http.StatusUnauthorized}

	result, err := f.service.GetDailyTakings(context.Background(), f.userID, &GetTakingsInput{
		AccountID: f.accountID,
		StartDate: "2024-03-01",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Contains(t, appErr.Message, "401")
}

func TestGetDailyTakingsMissingToken(t *testing.T) {
	f := newTakingsFixture(t)
	f.accounts.accounts[f.accountID].AccessToken = ""

	_, err := f.service.GetDailyTakings(context.Background(), f.userID, &GetTakingsInput{
		AccountID: f.accountID,
		StartDate: "2024-03-01",
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	// Configuration errors surface before any upstream call.
	assert.Zero(t, f.upstream.receiptCalls)
}

func TestGetDailyTakingsInvalidStartDate(t *testing.T) {
	f := newTakingsFixture(t)

	_, err := f.service.GetDailyTakings(context.Background(), f.userID, &GetTakingsInput{
		AccountID: f.accountID,
		StartDate: "01/03/2024",
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
	assert.Zero(t, f.upstream.receiptCalls)
}

func TestGetDailyTakingsOwnership(t *testing.T) {
	f := newTakingsFixture(t)

	_, err := f.service.GetDailyTakings(context.Background(), uuid.New(), &GetTakingsInput{
		AccountID: f.accountID,
		StartDate: "2024-03-01",
	})
	assert.Equal(t, http.StatusForbidden, apperror.GetAppError(err).Code)

	_, err = f.service.GetDailyTakings(context.Background(), f.userID, &GetTakingsInput{
		AccountID: uuid.New(),
		StartDate: "2024-03-01",
	})
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}

func TestGetStores(t *testing.T) {
	f := newTakingsFixture(t)
	f.upstream.stores = []loyverse.Store{{ID: "store-1", Name: "High Street"}}

	stores, err := f.service.GetStores(context.Background(), f.userID, f.accountID)

	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "High Street", stores[0].Name)
}

func TestInvalidateAccountClearsBothTiers(t *testing.T) {
	f := newTakingsFixture(t)
	f.upstream.receipts = []loyverse.Receipt{saleReceipt("2024-03-01", 50)}

	input := &GetTakingsInput{AccountID: f.accountID, StartDate: "2024-03-01"}
	_, err := f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)

	f.service.InvalidateAccount(context.Background(), f.accountID)

	result, err := f.service.GetDailyTakings(context.Background(), f.userID, input)
	require.NoError(t, err)
	assert.Equal(t, 2, f.upstream.receiptCalls)
	assert.Equal(t, CacheTierNone, result.Meta.Cache)
}
