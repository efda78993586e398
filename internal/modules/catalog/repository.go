package catalog

import "context"

// Repository defines item catalog data storage.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	GetByCode(ctx context.Context, lookupCode string) (*Item, error)
	Search(ctx context.Context, search string, categoryID *int64) ([]*Item, error)
	AdjustStock(ctx context.Context, id int64, delta int) error
}
