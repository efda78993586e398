package cashier

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo Repository
}

// NewService creates a new cashier service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterCashier(ctx context.Context, email, password, firstName, lastName string) (*Cashier, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	c := &Cashier{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		Active:       true,
	}

	if err := s.repo.CreateCashier(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *service) GetCashier(ctx context.Context, id string) (*Cashier, error) {
	return s.repo.GetCashierByID(ctx, id)
}
