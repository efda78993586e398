package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Service defines store business logic.
type Service interface {
	CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error)
	GetStore(ctx context.Context, id int64) (*Store, error)
	ListStores(ctx context.Context) ([]*Store, error)

	CreateRegister(ctx context.Context, storeID int64, req CreateRegisterRequest) (*Register, error)
	ListRegisters(ctx context.Context, storeID int64) ([]*Register, error)
	UpdateRegister(ctx context.Context, id int64, req UpdateRegisterRequest) (*Register, error)
}

type service struct{ repo Repository }

// NewService creates a new store service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateStore(ctx context.Context, req CreateStoreRequest) (*Store, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	st := &Store{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Active:  true,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetStore(ctx context.Context, id int64) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListStores(ctx context.Context) ([]*Store, error) {
	return s.repo.List(ctx)
}

func (s *service) CreateRegister(ctx context.Context, storeID int64, req CreateRegisterRequest) (*Register, error) {
	if storeID <= 0 {
		return nil, fmt.Errorf("%w: store_id is required", ErrInvalidRequest)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if _, err := s.repo.GetByID(ctx, storeID); err != nil {
		return nil, err
	}
	reg := &Register{
		StoreID: storeID,
		Name:    req.Name,
		Active:  true,
	}
	if err := s.repo.CreateRegister(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *service) ListRegisters(ctx context.Context, storeID int64) ([]*Register, error) {
	return s.repo.ListRegisters(ctx, storeID)
}

func (s *service) UpdateRegister(ctx context.Context, id int64, req UpdateRegisterRequest) (*Register, error) {
	reg, err := s.repo.GetRegister(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidRequest)
		}
		reg.Name = *req.Name
	}
	if req.Active != nil {
		reg.Active = *req.Active
	}
	if err := s.repo.UpdateRegister(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}
