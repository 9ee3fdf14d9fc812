package model

import "time"

// CheckRecord is one audited subscription check. The verdict cache itself
// is never persisted; this table is an append-only trail of fresh
// (non-cached) resolutions.
type CheckRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"size:255;index;not null" json:"email"`
	ProductID     string    `gorm:"size:64;index;not null" json:"product_id"`
	Active        bool      `gorm:"not null" json:"active"`
	TotalSales    int       `gorm:"not null" json:"total_sales"`
	UpstreamError string    `gorm:"size:512" json:"upstream_error,omitempty"`
	CheckedAt     time.Time `gorm:"index;not null" json:"checked_at"`
	CreatedAt     time.Time `json:"created_at"`
}
