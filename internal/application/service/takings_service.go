package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tillboard/tillboard-api/internal/config"
	"github.com/tillboard/tillboard-api/internal/domain/entity"
	"github.com/tillboard/tillboard-api/internal/domain/repository"
	"github.com/tillboard/tillboard-api/internal/infrastructure/cache"
	"github.com/tillboard/tillboard-api/internal/loyverse"
	"github.com/tillboard/tillboard-api/pkg/apperror"
)

// Cache tiers reported in result metadata
const (
	CacheTierMemory   = "memory"
	CacheTierDatabase = "database"
	CacheTierNone     = "none"
)

// loyverseAPI is the slice of the Loyverse client the takings pipeline uses
type loyverseAPI interface {
	ListReceipts(ctx context.Context, storeID string, since time.Time) ([]loyverse.Receipt, error)
	ListStores(ctx context.Context) ([]loyverse.Store, error)
	catalogClient
}

// TakingsService runs the fetch → aggregate → enrich pipeline behind a
// two-tier cache (in-process memory, then Postgres). Each request is fully
// self-contained; concurrent requests share nothing but the cache.
type TakingsService struct {
	accountRepo repository.AccountRepository
	cacheRepo   repository.CacheRepository
	memory      *cache.MemoryCache
	databaseTTL time.Duration
	newClient   func(accessToken string) loyverseAPI
}

// NewTakingsService creates a new takings service
func NewTakingsService(
	accountRepo repository.AccountRepository,
	cacheRepo repository.CacheRepository,
	memory *cache.MemoryCache,
	loyverseCfg config.LoyverseConfig,
	cacheCfg config.CacheConfig,
) *TakingsService {
	return &TakingsService{
		accountRepo: accountRepo,
		cacheRepo:   cacheRepo,
		memory:      memory,
		databaseTTL: cacheCfg.DatabaseTTL,
		newClient: func(accessToken string) loyverseAPI {
			return loyverse.NewClient(loyverseCfg.BaseURL, accessToken, loyverseCfg.Timeout)
		},
	}
}

// GetTakingsInput represents a takings query
type GetTakingsInput struct {
	AccountID uuid.UUID
	StoreID   string // overrides the account default; empty falls back to it
	StartDate string // inclusive, YYYY-MM-DD
	Refresh   bool   // bypass both cache tiers
}

// TakingsMeta carries informational outputs for display and telemetry
type TakingsMeta struct {
	ReceiptCount int    `json:"receipt_count"`
	DurationMs   int64  `json:"duration_ms"`
	Cache        string `json:"cache"`
}

// TakingsResult is the takings response payload
type TakingsResult struct {
	Takings []DailyTaking `json:"takings"`
	Meta    TakingsMeta   `json:"meta"`
}

// cachedTakings is the shape stored in both cache tiers
type cachedTakings struct {
	Takings      []DailyTaking `json:"takings"`
	ReceiptCount int           `json:"receipt_count"`
}

// GetDailyTakings returns per-day revenue summaries for one account, newest
// day first. An empty result with a nil error means the window genuinely held
// no receipts; upstream fetch failures are returned as errors, never as
// partial data.
func (s *TakingsService) GetDailyTakings(ctx context.Context, userID uuid.UUID, input *GetTakingsInput) (*TakingsResult, error) {
	started := time.Now()

	account, err := s.ownedAccount(ctx, userID, input.AccountID)
	if err != nil {
		return nil, err
	}

	// Configuration is validated before any network activity.
	if account.AccessToken == "" {
		return nil, apperror.NewConfigurationError("Account has no Loyverse access token")
	}
	since, err := time.ParseInLocation("2006-01-02", input.StartDate, time.UTC)
	if err != nil {
		return nil, apperror.NewBadRequestError("start_date must be in YYYY-MM-DD format")
	}

	storeID := input.StoreID
	if storeID == "" {
		storeID = account.StoreID
	}

	key := takingsCacheKey(account.ID, storeID, input.StartDate)

	if !input.Refresh {
		if result := s.fromCache(ctx, key); result != nil {
			result.Meta.DurationMs = time.Since(started).Milliseconds()
			return result, nil
		}
	}

	client := s.newClient(account.AccessToken)
	receipts, err := client.ListReceipts(ctx, storeID, since)
	if err != nil {
		return nil, upstreamError("receipts", err)
	}

	takings := enrichCategories(ctx, client, aggregateDailyTakings(receipts))

	s.storeInCache(ctx, account.ID, key, &cachedTakings{
		Takings:      takings,
		ReceiptCount: len(receipts),
	})

	return &TakingsResult{
		Takings: takings,
		Meta: TakingsMeta{
			ReceiptCount: len(receipts),
			DurationMs:   time.Since(started).Milliseconds(),
			Cache:        CacheTierNone,
		},
	}, nil
}

// GetStores returns the store catalog for an account, for the UI's store picker
func (s *TakingsService) GetStores(ctx context.Context, userID, accountID uuid.UUID) ([]loyverse.Store, error) {
	account, err := s.ownedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.AccessToken == "" {
		return nil, apperror.NewConfigurationError("Account has no Loyverse access token")
	}

	stores, err := s.newClient(account.AccessToken).ListStores(ctx)
	if err != nil {
		return nil, upstreamError("stores", err)
	}
	return stores, nil
}

// InvalidateAccount drops every cached window for an account, in both tiers.
// Called when an account's token or store changes and when it is deleted.
func (s *TakingsService) InvalidateAccount(ctx context.Context, accountID uuid.UUID) {
	s.memory.DeletePrefix(accountID.String() + ":")
	if err := s.cacheRepo.DeleteByAccount(ctx, accountID.String()); err != nil {
		log.Printf("Warning: failed to invalidate cache for account %s: %v", accountID, err)
	}
}

func (s *TakingsService) ownedAccount(ctx context.Context, userID, accountID uuid.UUID) (*entity.PosAccount, error) {
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

func (s *TakingsService) fromCache(ctx context.Context, key string) *TakingsResult {
	if payload := s.memory.Get(key); payload != nil {
		if result := decodeCached(payload, CacheTierMemory); result != nil {
			return result
		}
	}

	entry, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		log.Printf("Warning: cache lookup failed for %s: %v", key, err)
		return nil
	}
	if entry == nil {
		return nil
	}

	result := decodeCached([]byte(entry.Payload), CacheTierDatabase)
	if result != nil {
		// Promote to the memory tier for subsequent requests.
		s.memory.Set(key, []byte(entry.Payload))
	}
	return result
}

func (s *TakingsService) storeInCache(ctx context.Context, accountID uuid.UUID, key string, cached *cachedTakings) {
	payload, err := json.Marshal(cached)
	if err != nil {
		log.Printf("Warning: failed to encode takings for cache: %v", err)
		return
	}

	s.memory.Set(key, payload)

	entry := &entity.CacheEntry{
		Key:       key,
		AccountID: accountID,
		Payload:   string(payload),
		ExpiresAt: time.Now().Add(s.databaseTTL),
	}
	if err := s.cacheRepo.Set(ctx, entry); err != nil {
		log.Printf("Warning: failed to persist takings cache entry %s: %v", key, err)
	}
}

func decodeCached(payload []byte, tier string) *TakingsResult {
	var cached cachedTakings
	if err := json.Unmarshal(payload, &cached); err != nil {
		log.Printf("Warning: discarding undecodable cache payload: %v", err)
		return nil
	}
	return &TakingsResult{
		Takings: cached.Takings,
		Meta: TakingsMeta{
			ReceiptCount: cached.ReceiptCount,
			Cache:        tier,
		},
	}
}

func takingsCacheKey(accountID uuid.UUID, storeID, startDate string) string {
	store := storeID
	if store == "" {
		store = "all"
	}
	return fmt.Sprintf("%s:%s:%s", accountID, store, startDate)
}

func upstreamError(endpoint string, err error) error {
	var apiErr *loyverse.APIError
	if errors.As(err, &apiErr) {
		return apperror.NewUpstreamError(endpoint, apiErr.StatusCode)
	}
	return apperror.NewAppError(http.StatusBadGateway, fmt.Sprintf("Loyverse %s request failed: %v", endpoint, err))
}
