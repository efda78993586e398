package tax

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Service defines tax reference data business logic.
type Service interface {
	CreateTax(ctx context.Context, req CreateTaxRequest) (*Tax, error)
	GetTax(ctx context.Context, id int64) (*Tax, error)
	ListActiveTaxes(ctx context.Context) ([]*Tax, error)
}

type service struct{ repo Repository }

// NewService creates a new tax service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateTax(ctx context.Context, req CreateTaxRequest) (*Tax, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidRequest)
	}
	if req.Percentage.IsNegative() || req.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: percentage must be between 0 and 100", ErrInvalidRequest)
	}
	t := &Tax{
		Code:        req.Code,
		Description: req.Description,
		Percentage:  req.Percentage,
		Active:      true,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTax(ctx context.Context, id int64) (*Tax, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListActiveTaxes(ctx context.Context) ([]*Tax, error) {
	return s.repo.ListActive(ctx)
}
