package cashier

import "context"

// Service defines the interface for cashier-related business logic.
type Service interface {
	RegisterCashier(ctx context.Context, email, password, firstName, lastName string) (*Cashier, error)
	GetCashier(ctx context.Context, id string) (*Cashier, error)
}
