package tender

import "context"

// Repository defines tender reference data storage.
type Repository interface {
	Create(ctx context.Context, t *Tender) error
	GetByID(ctx context.Context, id int64) (*Tender, error)
	ListActive(ctx context.Context) ([]*Tender, error)
}
