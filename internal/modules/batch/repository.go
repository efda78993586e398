package batch

import "context"

// Repository defines batch data storage.
type Repository interface {
	Open(ctx context.Context, b *Batch) error
	GetCurrent(ctx context.Context, storeID int64) (*Batch, error)
	GetByNumber(ctx context.Context, storeID, batchNumber int64) (*Batch, error)
	Close(ctx context.Context, storeID, batchNumber, cashierID int64) (*Batch, error)
	History(ctx context.Context, storeID int64, limit int) ([]*Batch, error)
}
