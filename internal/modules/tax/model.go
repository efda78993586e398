package tax

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tax is a tax definition applied to the taxable base of a sale. Every
// active definition applies to every taxable sale; they stack rather than
// being selected by jurisdiction.
type Tax struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Percentage  decimal.Decimal `json:"percentage"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateTaxRequest is the payload for registering a tax definition.
type CreateTaxRequest struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Percentage  decimal.Decimal `json:"percentage"`
}
