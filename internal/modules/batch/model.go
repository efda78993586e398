package batch

import "time"

// BatchStatus represents the state of a register batch.
type BatchStatus int

const (
	StatusOpen   BatchStatus = 0
	StatusClosed BatchStatus = 1
)

// Batch groups the transactions rung up between a shift open and close.
// Batch numbers are scoped to a store.
type Batch struct {
	BatchNumber     int64       `json:"batch_number"`
	StoreID         int64       `json:"store_id"`
	RegisterID      string      `json:"register_id"`
	Status          BatchStatus `json:"status"`
	OpenTime        time.Time   `json:"open_time"`
	CloseTime       *time.Time  `json:"close_time,omitempty"`
	OpenCashierID   int64       `json:"open_cashier_id"`
	CloseCashierID  *int64      `json:"close_cashier_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OpenBatchRequest is the payload for opening a shift batch.
type OpenBatchRequest struct {
	StoreID    int64  `json:"store_id"`
	RegisterID string `json:"register_id"`
	CashierID  int64  `json:"cashier_id"`
}

// CloseBatchRequest is the payload for closing a shift batch.
type CloseBatchRequest struct {
	StoreID     int64 `json:"store_id"`
	BatchNumber int64 `json:"batch_number"`
	CashierID   int64 `json:"cashier_id"`
}
