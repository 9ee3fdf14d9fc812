package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gumroad-relay/internal/apperr"
	"gumroad-relay/internal/config"
	"gumroad-relay/internal/model"
)

type GumroadClient interface {
	// ListSales reads one page of the sales ledger, optionally restricted
	// server-side to a product. No retries, no pagination past the
	// requested page.
	ListSales(ctx context.Context, page int, productID string) (*model.SalesResult, error)
	// GetAccountInfo reads the merchant identity; used as a connectivity
	// probe by the admin status endpoint.
	GetAccountInfo(ctx context.Context) (*model.AccountInfoResult, error)
	ListProducts(ctx context.Context) (*model.ProductsResult, error)
}

type gumroadClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	accessToken string
}

func NewGumroadClient(gumroadCfg *config.Gumroad) GumroadClient {
	return &gumroadClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:  gumroadCfg.BaseApiURL,
		accessToken: gumroadCfg.AccessToken,
	}
}

func (c *gumroadClientImpl) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseApiURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Upstream("gumroad request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return apperr.Upstream(fmt.Sprintf("gumroad error %d: %s", resp.StatusCode, string(b)), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Upstream("decode gumroad response", err)
	}
	return nil
}

// upstreamMessage mirrors the body's message field, falling back to a
// generic description when the upstream omits it.
func upstreamMessage(message string) string {
	if message == "" {
		return "API call failed"
	}
	return message
}

func (c *gumroadClientImpl) ListSales(ctx context.Context, page int, productID string) (*model.SalesResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if productID != "" {
		params.Set("product_id", productID)
	}

	var result model.SalesResult
	if err := c.get(ctx, "/sales", params, &result); err != nil {
		return nil, err
	}
	// Only an explicit success=false counts as failure.
	if !result.Ok() {
		return nil, apperr.Upstream(upstreamMessage(result.Message), nil)
	}
	return &result, nil
}

func (c *gumroadClientImpl) GetAccountInfo(ctx context.Context) (*model.AccountInfoResult, error) {
	var result model.AccountInfoResult
	if err := c.get(ctx, "/user", nil, &result); err != nil {
		return nil, err
	}
	if !result.Ok() {
		return nil, apperr.Upstream(upstreamMessage(result.Message), nil)
	}
	return &result, nil
}

func (c *gumroadClientImpl) ListProducts(ctx context.Context) (*model.ProductsResult, error) {
	var result model.ProductsResult
	if err := c.get(ctx, "/products", nil, &result); err != nil {
		return nil, err
	}
	if !result.Ok() {
		return nil, apperr.Upstream(upstreamMessage(result.Message), nil)
	}
	return &result, nil
}
