package checkout

import "context"

// Unit is one atomic checkout against the backing store. Every method
// runs inside the same database transaction; if the unit function returns
// an error the transaction is rolled back and none of its effects remain.
type Unit interface {
	// NextTransactionNumber allocates the next number for the store from a
	// row-locked counter. Two concurrent checkouts can never receive the
	// same number.
	NextTransactionNumber(ctx context.Context, storeID int64) (int64, error)

	// CurrentBatchNumber resolves the open batch for the store and
	// register, defaulting to 1 when no batch has been opened.
	CurrentBatchNumber(ctx context.Context, storeID int64, registerID string) (int64, error)

	// LockItems reads item snapshots under FOR UPDATE row locks so stock
	// checks see the latest committed quantities and block competing
	// checkouts for the same items.
	LockItems(ctx context.Context, itemIDs []int64) (map[int64]*ItemSnapshot, error)

	// ActiveTaxes lists the active tax definitions.
	ActiveTaxes(ctx context.Context) ([]TaxRate, error)

	// TenderSnapshots reads the referenced tenders.
	TenderSnapshots(ctx context.Context, tenderIDs []int64) (map[int64]*TenderSnapshot, error)

	// PersistPlan writes the header, lines, tax entries, tender entries,
	// and receipt, and applies the stock decrements.
	PersistPlan(ctx context.Context, p *Plan) error
}

// Repository defines checkout data access.
type Repository interface {
	// InTransaction runs fn inside a single database transaction and
	// commits only if fn returns nil.
	InTransaction(ctx context.Context, fn func(u Unit) error) error

	GetDetail(ctx context.Context, storeID, transactionNumber int64) (*TransactionDetail, error)
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
}
