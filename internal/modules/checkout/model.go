package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a sale. A transaction is
// assembled in memory as Pending and becomes Committed only when the
// whole atomic unit commits; an aborted checkout leaves no rows at all,
// so Aborted is never persisted.
type Status int

const (
	StatusPending   Status = 0
	StatusCommitted Status = 1
)

// Transaction is the sale header. Keyed by (StoreID, TransactionNumber);
// transaction numbers are strictly increasing within a store.
type Transaction struct {
	TransactionNumber int64           `json:"transaction_number"`
	StoreID           int64           `json:"store_id"`
	BatchNumber       int64           `json:"batch_number"`
	Time              time.Time       `json:"time"`
	CustomerID        *int64          `json:"customer_id,omitempty"`
	CashierID         int64           `json:"cashier_id"`
	RegisterID        string          `json:"register_id"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxTotal          decimal.Decimal `json:"tax_total"`
	Total             decimal.Decimal `json:"total"`
	Status            Status          `json:"status"`
}

// TransactionEntry is one sold line. Price, Cost, and Taxable are
// snapshots of the item at sale time and never change afterward.
type TransactionEntry struct {
	TransactionNumber int64           `json:"transaction_number"`
	StoreID           int64           `json:"store_id"`
	BatchNumber       int64           `json:"batch_number"`
	LineNumber        int             `json:"line_number"`
	ItemID            int64           `json:"item_id"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	Taxable           bool            `json:"taxable"`
	ExtendedPrice     decimal.Decimal `json:"extended_price"`
	Cost              decimal.Decimal `json:"cost"`
	Comment           string          `json:"comment,omitempty"`
}

// TaxEntry records one applied tax definition for a sale.
type TaxEntry struct {
	TransactionNumber int64           `json:"transaction_number"`
	StoreID           int64           `json:"store_id"`
	BatchNumber       int64           `json:"batch_number"`
	TaxID             int64           `json:"tax_id"`
	TaxableAmount     decimal.Decimal `json:"taxable_amount"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	TaxPercentage     decimal.Decimal `json:"tax_percentage"`
}

// TenderEntry records one payment applied to a sale.
type TenderEntry struct {
	TransactionNumber int64           `json:"transaction_number"`
	StoreID           int64           `json:"store_id"`
	BatchNumber       int64           `json:"batch_number"`
	TenderID          int64           `json:"tender_id"`
	Amount            decimal.Decimal `json:"amount"`
	AuthorizationCode string          `json:"authorization_code,omitempty"`
	CardNumber        string          `json:"card_number,omitempty"`
	CardType          string          `json:"card_type,omitempty"`
	CheckNumber       string          `json:"check_number,omitempty"`
}

// Receipt is the printable record for a sale, 1:1 with the header.
// ReceiptNumber is derived from store, date, and transaction number.
type Receipt struct {
	TransactionNumber int64     `json:"transaction_number"`
	StoreID           int64     `json:"store_id"`
	BatchNumber       int64     `json:"batch_number"`
	ReceiptNumber     string    `json:"receipt_number"`
	PrintDate         time.Time `json:"print_date"`
	Reprinted         bool      `json:"reprinted"`
	ReprintCount      int       `json:"reprint_count"`
	ReceiptType       int       `json:"receipt_type"`
}

// RequestItem is one cart line in a checkout request. Price, when set,
// overrides the catalog price for this line.
type RequestItem struct {
	ItemID   int64            `json:"item_id"`
	Quantity int              `json:"quantity"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Comment  string           `json:"comment,omitempty"`
}

// RequestTender is one payment in a checkout request.
type RequestTender struct {
	TenderID          int64           `json:"tender_id"`
	Amount            decimal.Decimal `json:"amount"`
	AuthorizationCode string          `json:"authorization_code,omitempty"`
	CardNumber        string          `json:"card_number,omitempty"`
	CardType          string          `json:"card_type,omitempty"`
	CheckNumber       string          `json:"check_number,omitempty"`
}

// CreateTransactionRequest is the payload for committing a sale.
type CreateTransactionRequest struct {
	StoreID    int64           `json:"store_id"`
	RegisterID string          `json:"register_id"`
	CashierID  int64           `json:"cashier_id"`
	CustomerID *int64          `json:"customer_id,omitempty"`
	Items      []RequestItem   `json:"items"`
	Tenders    []RequestTender `json:"tenders"`
}

// TransactionResponse is returned for a committed sale.
type TransactionResponse struct {
	TransactionNumber int64           `json:"transaction_number"`
	StoreID           int64           `json:"store_id"`
	BatchNumber       int64           `json:"batch_number"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxTotal          decimal.Decimal `json:"tax_total"`
	Total             decimal.Decimal `json:"total"`
	ChangeAmount      decimal.Decimal `json:"change_amount"`
	ReceiptNumber     string          `json:"receipt_number"`
	Timestamp         time.Time       `json:"timestamp"`
}

// TransactionDetail is a committed sale with all its records.
type TransactionDetail struct {
	Transaction Transaction        `json:"transaction"`
	Entries     []TransactionEntry `json:"entries"`
	Taxes       []TaxEntry         `json:"taxes"`
	Tenders     []TenderEntry      `json:"tenders"`
	Receipt     *Receipt           `json:"receipt,omitempty"`
}

// SearchParams filters the transaction search.
type SearchParams struct {
	StoreID    *int64
	CustomerID *int64
	CashierID  *int64
	MinTotal   *decimal.Decimal
	MaxTotal   *decimal.Decimal
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// SearchResult is a page of transaction headers.
type SearchResult struct {
	Transactions []*Transaction `json:"transactions"`
	Total        int            `json:"total"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
}

// ItemSnapshot is the catalog state of an item read under lock inside the
// commit transaction. Pricing and stock checks work only from snapshots,
// never from request-external caches.
type ItemSnapshot struct {
	ID          int64
	Description string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Quantity    int
	Taxable     bool
	Active      bool
}

// TaxRate is an active tax definition as read inside the commit transaction.
type TaxRate struct {
	ID         int64
	Percentage decimal.Decimal
}

// TenderSnapshot is the tender reference state read inside the commit
// transaction.
type TenderSnapshot struct {
	ID     int64
	Active bool
}
