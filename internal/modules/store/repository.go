package store

import "context"

// Repository defines store and register data storage.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id int64) (*Store, error)
	List(ctx context.Context) ([]*Store, error)

	CreateRegister(ctx context.Context, reg *Register) error
	GetRegister(ctx context.Context, id int64) (*Register, error)
	ListRegisters(ctx context.Context, storeID int64) ([]*Register, error)
	UpdateRegister(ctx context.Context, reg *Register) error
}
