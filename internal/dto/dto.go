package dto

import (
	"gumroad-relay/internal/model"
)

type CheckSubscriptionRequest struct {
	Email     string `json:"email" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

type PurchaseURLRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type CheckSubscriptionResponse struct {
	Active              bool                `json:"active"`
	Email               string              `json:"email"`
	ProductID           string              `json:"product_id"`
	Message             string              `json:"message"`
	LastPurchase        *string             `json:"last_purchase"`
	LastPrice           *int64              `json:"last_price"`
	TotalSales          int                 `json:"total_sales"`
	SubscriptionID      *string             `json:"subscription_id"`
	SubscriptionDetails []model.SaleSummary `json:"subscription_details"`
	Cached              bool                `json:"cached"`
	CheckedAt           string              `json:"checked_at"`
	APIError            string              `json:"api_error,omitempty"`
}

type PurchaseURLResponse struct {
	PurchaseURL string `json:"purchase_url"`
	ProductID   string `json:"product_id"`
	Message     string `json:"message"`
}

type ProductSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	URL            string `json:"url"`
	Price          int64  `json:"price"`
	Currency       string `json:"currency"`
	SalesCount     int64  `json:"sales_count"`
	IsSubscription bool   `json:"is_subscription"`
}

type ProductListResponse struct {
	Products  []ProductSummary `json:"products"`
	Total     int              `json:"total"`
	Timestamp string           `json:"timestamp"`
}

type StatusConfig struct {
	HasAccessToken bool   `json:"has_access_token"`
	ApplicationID  string `json:"application_id"`
}

type StatusResponse struct {
	Status              string                   `json:"status"`
	Timestamp           string                   `json:"timestamp"`
	GumroadAPIWorking   bool                     `json:"gumroad_api_working"`
	CacheEntries        int                      `json:"cache_entries"`
	ExpiredCacheCleaned int                      `json:"expired_cache_cleaned"`
	Config              StatusConfig             `json:"config"`
	UserInfo            *model.AccountInfoResult `json:"user_info"`
	Products            []model.Product          `json:"products"`
}

type ClearCacheResponse struct {
	Message        string `json:"message"`
	EntriesCleared int    `json:"entries_cleared"`
	Timestamp      string `json:"timestamp"`
}

// SubscriberEntry flattens a cached Verdict with its cache metadata.
type SubscriberEntry struct {
	model.Verdict
	CacheKey        string `json:"cache_key"`
	CacheAgeSeconds int    `json:"cache_age_seconds"`
	CacheExpired    bool   `json:"cache_expired"`
}

type SubscribersResponse struct {
	TotalCached       int               `json:"total_cached"`
	ActiveSubscribers int               `json:"active_subscribers"`
	Subscribers       []SubscriberEntry `json:"subscribers"`
	Timestamp         string            `json:"timestamp"`
}

type HistoryResponse struct {
	Enabled   bool                 `json:"enabled"`
	Total     int                  `json:"total"`
	Checks    []*model.CheckRecord `json:"checks"`
	Timestamp string               `json:"timestamp"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	CacheSize int    `json:"cache_size"`
	Service   string `json:"service"`
}
