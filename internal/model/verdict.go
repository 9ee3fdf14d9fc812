package model

// SaleSummary is the per-sale slice of a Verdict, kept in upstream
// return order.
type SaleSummary struct {
	SaleID         string  `json:"sale_id"`
	CreatedAt      string  `json:"created_at"`
	Price          int64   `json:"price"`
	Refunded       bool    `json:"refunded"`
	Disputed       bool    `json:"disputed"`
	SubscriptionID *string `json:"subscription_id"`
}

// Verdict is the computed subscription status for one (email, product)
// pair. Active is true iff at least one sale has a subscription_id and is
// neither refunded nor disputed. LastPurchase/SubscriptionID/LastPrice
// describe the qualifying sale with the greatest created_at string.
type Verdict struct {
	Active              bool          `json:"active"`
	Email               string        `json:"email"`
	ProductID           string        `json:"product_id"`
	TotalSales          int           `json:"total_sales"`
	LastPurchase        *string       `json:"last_purchase"`
	SubscriptionID      *string       `json:"subscription_id"`
	LastPrice           *int64        `json:"last_price"`
	SubscriptionDetails []SaleSummary `json:"subscription_details"`
	CheckedAt           string        `json:"checked_at"`
	Error               string        `json:"error,omitempty"`
}
