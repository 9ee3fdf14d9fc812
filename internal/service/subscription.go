package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gumroad-relay/internal/cache"
	"gumroad-relay/internal/client"
	"gumroad-relay/internal/config"
	"gumroad-relay/internal/model"
	"gumroad-relay/internal/repository"
)

type SubscriptionService interface {
	// CheckSubscription resolves the active/inactive verdict for an
	// (email, product) pair, serving a cached verdict when one is
	// younger than the freshness window. The bool reports whether the
	// cache holds an entry for the pair after resolution.
	CheckSubscription(ctx context.Context, email, productID string) (*model.Verdict, bool, error)
	PurchaseURL(productID string) string
	HasCredentials() bool
}

type subscriptionServiceImpl struct {
	gumroadClient client.GumroadClient
	verdictCache  *cache.VerdictCache
	historyRepo   repository.CheckHistoryRepository // nil when auditing is disabled
	checkoutHost  string
	hasToken      bool
	now           func() time.Time
}

func NewSubscriptionService(
	gumroadClient client.GumroadClient,
	verdictCache *cache.VerdictCache,
	historyRepo repository.CheckHistoryRepository,
	gumroadCfg *config.Gumroad,
) SubscriptionService {
	return &subscriptionServiceImpl{
		gumroadClient: gumroadClient,
		verdictCache:  verdictCache,
		historyRepo:   historyRepo,
		checkoutHost:  gumroadCfg.CheckoutHost,
		hasToken:      gumroadCfg.AccessToken != "",
		now:           time.Now,
	}
}

func (s *subscriptionServiceImpl) HasCredentials() bool {
	return s.hasToken
}

func (s *subscriptionServiceImpl) CheckSubscription(ctx context.Context, email, productID string) (*model.Verdict, bool, error) {
	key := cache.Key(email, productID)

	if verdict, ok := s.verdictCache.Get(key); ok {
		return verdict, true, nil
	}

	checkedAt := s.now()

	result, err := s.gumroadClient.ListSales(ctx, 1, productID)
	if err != nil {
		// Fail closed: inactive verdict carrying the failure, returned
		// without caching so the next call retries upstream.
		verdict := &model.Verdict{
			Active:    false,
			Email:     email,
			ProductID: productID,
			Error:     err.Error(),
			CheckedAt: checkedAt.Format(time.RFC3339),
		}
		s.record(ctx, verdict, checkedAt)
		return verdict, s.verdictCache.Contains(key), nil
	}

	var latest *model.Sale
	details := make([]model.SaleSummary, 0)
	active := false
	totalSales := 0

	for i := range result.Sales {
		sale := &result.Sales[i]
		if !strings.EqualFold(sale.Email, email) {
			continue
		}
		totalSales++
		details = append(details, summarize(sale))

		if sale.SubscriptionID == "" || sale.Refunded || sale.Disputed {
			continue
		}
		active = true
		// Strictly greater keeps the first-encountered sale on ties.
		if latest == nil || sale.CreatedAt > latest.CreatedAt {
			latest = sale
		}
	}

	verdict := &model.Verdict{
		Active:              active,
		Email:               email,
		ProductID:           productID,
		TotalSales:          totalSales,
		SubscriptionDetails: details,
		CheckedAt:           checkedAt.Format(time.RFC3339),
	}
	if latest != nil {
		createdAt := latest.CreatedAt
		subscriptionID := latest.SubscriptionID
		price := latest.Price
		verdict.LastPurchase = &createdAt
		verdict.SubscriptionID = &subscriptionID
		verdict.LastPrice = &price
	}

	s.verdictCache.Put(key, verdict)
	s.record(ctx, verdict, checkedAt)

	return verdict, true, nil
}

func (s *subscriptionServiceImpl) PurchaseURL(productID string) string {
	return fmt.Sprintf("https://%s/l/%s", s.checkoutHost, productID)
}

// record appends the resolution to the audit trail, best effort.
func (s *subscriptionServiceImpl) record(ctx context.Context, verdict *model.Verdict, checkedAt time.Time) {
	if s.historyRepo == nil {
		return
	}
	err := s.historyRepo.Record(ctx, &model.CheckRecord{
		Email:         verdict.Email,
		ProductID:     verdict.ProductID,
		Active:        verdict.Active,
		TotalSales:    verdict.TotalSales,
		UpstreamError: verdict.Error,
		CheckedAt:     checkedAt,
	})
	if err != nil {
		log.Println("record check history:", err)
	}
}

func summarize(sale *model.Sale) model.SaleSummary {
	summary := model.SaleSummary{
		SaleID:    sale.SaleID,
		CreatedAt: sale.CreatedAt,
		Price:     sale.Price,
		Refunded:  sale.Refunded,
		Disputed:  sale.Disputed,
	}
	if sale.SubscriptionID != "" {
		subscriptionID := sale.SubscriptionID
		summary.SubscriptionID = &subscriptionID
	}
	return summary
}
