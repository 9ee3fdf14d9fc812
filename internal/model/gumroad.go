package model

import "encoding/json"

// Sale is one row of the Gumroad sales ledger. Read-only; consumed as
// returned by the API. A missing subscription_id decodes to "".
type Sale struct {
	SaleID         string `json:"sale_id"`
	Email          string `json:"email"`
	CreatedAt      string `json:"created_at"` // ISO-8601, lexically sortable
	Price          int64  `json:"price"`      // cents
	Refunded       bool   `json:"refunded"`
	Disputed       bool   `json:"disputed"`
	SubscriptionID string `json:"subscription_id"`
}

type Product struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	ShortURL             string  `json:"short_url"`
	Price                int64   `json:"price"`
	Currency             string  `json:"currency"`
	SalesCount           int64   `json:"sales_count"`
	SubscriptionDuration *string `json:"subscription_duration"`
}

func (p *Product) IsSubscription() bool {
	return p.SubscriptionDuration != nil
}

// Gumroad marks failures with an explicit success=false; a missing field
// counts as success, so the flag is decoded as *bool.

type SalesResult struct {
	Success     *bool  `json:"success"`
	Message     string `json:"message"`
	Sales       []Sale `json:"sales"`
	NextPageURL string `json:"next_page_url"`
}

func (r *SalesResult) Ok() bool {
	return r.Success == nil || *r.Success
}

type ProductsResult struct {
	Success  *bool     `json:"success"`
	Message  string    `json:"message"`
	Products []Product `json:"products"`
}

func (r *ProductsResult) Ok() bool {
	return r.Success == nil || *r.Success
}

type AccountInfoResult struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
}

func (r *AccountInfoResult) Ok() bool {
	return r.Success == nil || *r.Success
}
