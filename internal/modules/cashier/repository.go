package cashier

import "context"

// Repository defines the interface for cashier data storage.
type Repository interface {
	CreateCashier(ctx context.Context, c *Cashier) error
	GetCashierByID(ctx context.Context, id string) (*Cashier, error)
	GetCashierByEmail(ctx context.Context, email string) (*Cashier, error)
}
