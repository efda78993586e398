package customer

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Service defines customer business logic.
type Service interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	GetCustomerByAccount(ctx context.Context, accountNumber string) (*Customer, error)
	SearchCustomers(ctx context.Context, search string) ([]*Customer, error)
}

type service struct{ repo Repository }

// NewService creates a new customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	if req.AccountNumber == "" {
		return nil, fmt.Errorf("%w: account_number is required", ErrInvalidRequest)
	}
	if req.FirstName == "" && req.LastName == "" && req.Company == "" {
		return nil, fmt.Errorf("%w: a name or company is required", ErrInvalidRequest)
	}
	c := &Customer{
		AccountNumber: req.AccountNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Company:       req.Company,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetCustomerByAccount(ctx context.Context, accountNumber string) (*Customer, error) {
	return s.repo.GetByAccountNumber(ctx, accountNumber)
}

func (s *service) SearchCustomers(ctx context.Context, search string) ([]*Customer, error) {
	if search == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidRequest)
	}
	return s.repo.Search(ctx, search)
}
