package tax

import "context"

// Repository defines tax reference data storage.
type Repository interface {
	Create(ctx context.Context, t *Tax) error
	GetByID(ctx context.Context, id int64) (*Tax, error)
	ListActive(ctx context.Context) ([]*Tax, error)
}
