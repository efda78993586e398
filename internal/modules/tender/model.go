package tender

import "time"

// TenderType classifies how a payment method settles.
type TenderType int

const (
	TypeCash TenderType = iota
	TypeCard
	TypeCheck
	TypeVoucher
)

// Tender is a payment method accepted at a register.
type Tender struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	Description     string     `json:"description"`
	TenderType      TenderType `json:"tender_type"`
	OpensCashDrawer bool       `json:"opens_cash_drawer"`
	AllowOverTender bool       `json:"allow_over_tender"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateTenderRequest is the payload for registering a payment method.
type CreateTenderRequest struct {
	Code            string     `json:"code"`
	Description     string     `json:"description"`
	TenderType      TenderType `json:"tender_type"`
	OpensCashDrawer bool       `json:"opens_cash_drawer"`
	AllowOverTender bool       `json:"allow_over_tender"`
}
