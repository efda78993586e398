package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/retailops/corepos-backend/internal/modules/cashier"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	cashierRepo cashier.Repository
	jwtKey      []byte
}

// NewService creates a new auth service. The signing key comes from
// configuration, never from source.
func NewService(cashierRepo cashier.Repository, jwtKey []byte) Service {
	return &service{cashierRepo: cashierRepo, jwtKey: jwtKey}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	c, err := s.cashierRepo.GetCashierByEmail(ctx, email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}
	if !c.Active {
		return "", errors.New("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &jwt.StandardClaims{
		Subject:   c.ID.String(),
		ExpiresAt: expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
