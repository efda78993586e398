package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a sellable product tracked in store inventory.
type Item struct {
	ID           int64           `json:"id"`
	LookupCode   string          `json:"lookup_code"`
	Description  string          `json:"description"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	DepartmentID *int64          `json:"department_id,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Quantity     int             `json:"quantity"`
	Taxable      bool            `json:"taxable"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateItemRequest is the payload for adding an item to the catalog.
type CreateItemRequest struct {
	LookupCode   string          `json:"lookup_code"`
	Description  string          `json:"description"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	DepartmentID *int64          `json:"department_id,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Quantity     int             `json:"quantity"`
	Taxable      bool            `json:"taxable"`
}

// AdjustStockRequest is the payload for receiving or correcting stock.
// Delta may be negative; an adjustment that would drive quantity below zero
// is rejected.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason,omitempty"`
}
