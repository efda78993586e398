package store

import "time"

// Store is a physical location whose transactions, batches, and sequence
// counters are scoped to its ID.
type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStoreRequest is the payload for registering a store.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Register is a point-of-sale terminal belonging to a store. Its name is
// the register identifier stamped onto batches and transactions.
type Register struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"store_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRegisterRequest is the payload for adding a register to a store.
type CreateRegisterRequest struct {
	Name string `json:"name"`
}

// UpdateRegisterRequest is the payload for renaming or retiring a
// register. Nil fields are left unchanged.
type UpdateRegisterRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}
