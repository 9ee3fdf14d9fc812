package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gumroad-relay/internal/apperr"
	"gumroad-relay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) GumroadClient {
	return NewGumroadClient(&config.Gumroad{
		BaseApiURL:  baseURL,
		AccessToken: "test-token",
	})
}

func TestListSalesRequestShape(t *testing.T) {
	var gotPath, gotAuth, gotPage, gotProductID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotPage = r.URL.Query().Get("page")
		gotProductID = r.URL.Query().Get("product_id")
		w.Write([]byte(`{"success": true, "sales": [{"sale_id": "s-1", "email": "x@y.com", "created_at": "2024-01-01T00:00:00Z", "price": 300, "subscription_id": "sub-1"}]}`))
	}))
	defer ts.Close()

	result, err := newTestClient(ts.URL).ListSales(context.Background(), 1, "p1")
	require.NoError(t, err)

	assert.Equal(t, "/sales", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "1", gotPage)
	assert.Equal(t, "p1", gotProductID)

	require.Len(t, result.Sales, 1)
	assert.Equal(t, "s-1", result.Sales[0].SaleID)
	assert.Equal(t, int64(300), result.Sales[0].Price)
	assert.Equal(t, "sub-1", result.Sales[0].SubscriptionID)
}

func TestListSalesOmitsProductFilterWhenEmpty(t *testing.T) {
	var hasProductID bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasProductID = r.URL.Query().Has("product_id")
		w.Write([]byte(`{"success": true, "sales": []}`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).ListSales(context.Background(), 1, "")
	require.NoError(t, err)
	assert.False(t, hasProductID)
}

func TestListSalesMissingSuccessFieldCountsAsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sales": []}`))
	}))
	defer ts.Close()

	result, err := newTestClient(ts.URL).ListSales(context.Background(), 1, "p1")
	require.NoError(t, err)
	assert.Empty(t, result.Sales)
}

func TestListSalesExplicitFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "The access token is invalid"}`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).ListSales(context.Background(), 1, "p1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "The access token is invalid")
}

func TestListSalesExplicitFailureWithoutMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).ListSales(context.Background(), 1, "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API call failed")
}

func TestListSalesHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).ListSales(context.Background(), 1, "p1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "401")
}

func TestListSalesTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused

	_, err := newTestClient(ts.URL).ListSales(context.Background(), 1, "p1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestGetAccountInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		w.Write([]byte(`{"success": true, "user": {"name": "Merchant", "user_id": "u-1"}}`))
	}))
	defer ts.Close()

	result, err := newTestClient(ts.URL).GetAccountInfo(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Merchant", "user_id": "u-1"}`, string(result.User))
}

func TestListProducts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(`{"success": true, "products": [
			{"id": "p1", "name": "Pro", "short_url": "https://gum.co/pro", "price": 999, "currency": "usd", "sales_count": 7, "subscription_duration": "monthly"},
			{"id": "p2", "name": "One-off", "subscription_duration": null}
		]}`))
	}))
	defer ts.Close()

	result, err := newTestClient(ts.URL).ListProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Products, 2)
	assert.True(t, result.Products[0].IsSubscription())
	assert.False(t, result.Products[1].IsSubscription())
	assert.Equal(t, int64(7), result.Products[0].SalesCount)
}
