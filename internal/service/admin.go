package service

import (
	"context"
	"time"

	"gumroad-relay/internal/cache"
	"gumroad-relay/internal/client"
	"gumroad-relay/internal/config"
	"gumroad-relay/internal/dto"
	"gumroad-relay/internal/repository"
)

const serviceName = "Multi-Product Gumroad Subscription Backend"

type AdminService interface {
	// Status probes upstream connectivity and sweeps expired cache
	// entries as a side effect. Upstream failures degrade inside the
	// report instead of erroring out.
	Status(ctx context.Context) *dto.StatusResponse
	Products(ctx context.Context) (*dto.ProductListResponse, error)
	Subscribers() *dto.SubscribersResponse
	ClearCache() *dto.ClearCacheResponse
	History(ctx context.Context, limit int) (*dto.HistoryResponse, error)
	Health() *dto.HealthResponse
}

type adminServiceImpl struct {
	gumroadClient client.GumroadClient
	verdictCache  *cache.VerdictCache
	historyRepo   repository.CheckHistoryRepository // nil when auditing is disabled
	applicationID string
	hasToken      bool
	now           func() time.Time
}

func NewAdminService(
	gumroadClient client.GumroadClient,
	verdictCache *cache.VerdictCache,
	historyRepo repository.CheckHistoryRepository,
	gumroadCfg *config.Gumroad,
) AdminService {
	return &adminServiceImpl{
		gumroadClient: gumroadClient,
		verdictCache:  verdictCache,
		historyRepo:   historyRepo,
		applicationID: gumroadCfg.ApplicationID,
		hasToken:      gumroadCfg.AccessToken != "",
		now:           time.Now,
	}
}

func (s *adminServiceImpl) Status(ctx context.Context) *dto.StatusResponse {
	accountInfo, accountErr := s.gumroadClient.GetAccountInfo(ctx)
	apiWorking := accountErr == nil

	productsResult, productsErr := s.gumroadClient.ListProducts(ctx)

	// Report the size before the sweep so the two numbers add up.
	cacheEntries := s.verdictCache.Len()
	cleaned := s.verdictCache.Sweep()

	resp := &dto.StatusResponse{
		Status:              "OK",
		Timestamp:           s.now().Format(time.RFC3339),
		GumroadAPIWorking:   apiWorking,
		CacheEntries:        cacheEntries,
		ExpiredCacheCleaned: cleaned,
		Config: dto.StatusConfig{
			HasAccessToken: s.hasToken,
			ApplicationID:  s.applicationID,
		},
	}
	if apiWorking {
		resp.UserInfo = accountInfo
	}
	if productsErr == nil {
		resp.Products = productsResult.Products
	}
	return resp
}

func (s *adminServiceImpl) Products(ctx context.Context) (*dto.ProductListResponse, error) {
	result, err := s.gumroadClient.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ProductSummary, len(result.Products))
	for i := range result.Products {
		product := &result.Products[i]
		summaries[i] = dto.ProductSummary{
			ID:             product.ID,
			Name:           product.Name,
			URL:            product.ShortURL,
			Price:          product.Price,
			Currency:       product.Currency,
			SalesCount:     product.SalesCount,
			IsSubscription: product.IsSubscription(),
		}
	}

	return &dto.ProductListResponse{
		Products:  summaries,
		Total:     len(summaries),
		Timestamp: s.now().Format(time.RFC3339),
	}, nil
}

func (s *adminServiceImpl) Subscribers() *dto.SubscribersResponse {
	snapshots := s.verdictCache.List()

	subscribers := make([]dto.SubscriberEntry, len(snapshots))
	activeCount := 0
	for i, snapshot := range snapshots {
		subscribers[i] = dto.SubscriberEntry{
			Verdict:         *snapshot.Verdict,
			CacheKey:        snapshot.Key,
			CacheAgeSeconds: int(snapshot.Age.Seconds()),
			CacheExpired:    snapshot.Expired,
		}
		if snapshot.Verdict.Active {
			activeCount++
		}
	}

	return &dto.SubscribersResponse{
		TotalCached:       len(subscribers),
		ActiveSubscribers: activeCount,
		Subscribers:       subscribers,
		Timestamp:         s.now().Format(time.RFC3339),
	}
}

func (s *adminServiceImpl) ClearCache() *dto.ClearCacheResponse {
	cleared := s.verdictCache.Clear()

	return &dto.ClearCacheResponse{
		Message:        "Cache cleared successfully",
		EntriesCleared: cleared,
		Timestamp:      s.now().Format(time.RFC3339),
	}
}

func (s *adminServiceImpl) History(ctx context.Context, limit int) (*dto.HistoryResponse, error) {
	resp := &dto.HistoryResponse{
		Timestamp: s.now().Format(time.RFC3339),
	}
	if s.historyRepo == nil {
		return resp, nil
	}

	if limit <= 0 {
		limit = 50
	}
	records, err := s.historyRepo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	resp.Enabled = true
	resp.Total = len(records)
	resp.Checks = records
	return resp, nil
}

func (s *adminServiceImpl) Health() *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:    "OK",
		Timestamp: s.now().Format(time.RFC3339),
		CacheSize: s.verdictCache.Len(),
		Service:   serviceName,
	}
}
