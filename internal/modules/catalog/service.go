package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrStockWouldGoNegative is returned when an adjustment would drive an
// item's quantity below zero. Every stock mutation outside checkout goes
// through AdjustStock, so quantity can never be driven negative by a
// correction or receiving error.
var ErrStockWouldGoNegative = errors.New("adjustment would drive stock below zero")

// ErrItemNotFound is returned when the requested item does not exist.
var ErrItemNotFound = errors.New("item not found")

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Service defines item catalog business logic.
type Service interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItem(ctx context.Context, id int64) (*Item, error)
	GetItemByCode(ctx context.Context, lookupCode string) (*Item, error)
	SearchItems(ctx context.Context, search string, categoryID *int64) ([]*Item, error)
	AdjustStock(ctx context.Context, id int64, req AdjustStockRequest) (*Item, error)
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if req.LookupCode == "" {
		return nil, fmt.Errorf("%w: lookup_code is required", ErrInvalidRequest)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidRequest)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidRequest)
	}
	item := &Item{
		LookupCode:   req.LookupCode,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		DepartmentID: req.DepartmentID,
		Price:        req.Price,
		Cost:         req.Cost,
		Quantity:     req.Quantity,
		Taxable:      req.Taxable,
		Active:       true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetItemByCode(ctx context.Context, lookupCode string) (*Item, error) {
	return s.repo.GetByCode(ctx, lookupCode)
}

func (s *service) SearchItems(ctx context.Context, search string, categoryID *int64) ([]*Item, error) {
	return s.repo.Search(ctx, search, categoryID)
}

func (s *service) AdjustStock(ctx context.Context, id int64, req AdjustStockRequest) (*Item, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: delta must be non-zero", ErrInvalidRequest)
	}
	if err := s.repo.AdjustStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
