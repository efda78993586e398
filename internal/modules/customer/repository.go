package customer

import "context"

// Repository defines customer data storage.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id int64) (*Customer, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*Customer, error)
	Search(ctx context.Context, search string) ([]*Customer, error)
}
