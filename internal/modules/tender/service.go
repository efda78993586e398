package tender

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Service defines tender reference data business logic.
type Service interface {
	CreateTender(ctx context.Context, req CreateTenderRequest) (*Tender, error)
	GetTender(ctx context.Context, id int64) (*Tender, error)
	ListActiveTenders(ctx context.Context) ([]*Tender, error)
}

type service struct{ repo Repository }

// NewService creates a new tender service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateTender(ctx context.Context, req CreateTenderRequest) (*Tender, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidRequest)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidRequest)
	}
	t := &Tender{
		Code:            req.Code,
		Description:     req.Description,
		TenderType:      req.TenderType,
		OpensCashDrawer: req.OpensCashDrawer,
		AllowOverTender: req.AllowOverTender,
		Active:          true,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetTender(ctx context.Context, id int64) (*Tender, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListActiveTenders(ctx context.Context) ([]*Tender, error) {
	return s.repo.ListActive(ctx)
}
