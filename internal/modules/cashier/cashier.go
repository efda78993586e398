package cashier

import (
	"time"

	"github.com/google/uuid"
)

// Cashier is an employee account that can log in and ring up sales.
// CashierNumber is the short store-floor identifier stamped onto
// transactions; ID is the login identity.
type Cashier struct {
	ID            uuid.UUID `json:"id"`
	CashierNumber int64     `json:"cashier_number"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
