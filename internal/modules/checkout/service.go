package checkout

import (
	"context"
	"log"
	"sort"
	"time"
)

// Service defines checkout business logic.
type Service interface {
	// Checkout commits a sale as one all-or-nothing unit and returns the
	// committed result. Business-rule violations come back as
	// *DeclineError; retryable store failures wrap ErrTransientStore.
	Checkout(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error)

	GetTransaction(ctx context.Context, storeID, transactionNumber int64) (*TransactionDetail, error)
	SearchTransactions(ctx context.Context, params SearchParams) (*SearchResult, error)
}

type service struct {
	repo    Repository
	timeout time.Duration
	now     func() time.Time
}

// NewService creates a new checkout service. timeout bounds the whole
// atomic unit; on expiry the unit aborts with no partial state and the
// failure is reported as retryable.
func NewService(repo Repository, timeout time.Duration) Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &service{repo: repo, timeout: timeout, now: time.Now}
}

func (s *service) Checkout(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var resp *TransactionResponse
	err := s.repo.InTransaction(ctx, func(u Unit) error {
		number, err := u.NextTransactionNumber(ctx, req.StoreID)
		if err != nil {
			return err
		}
		batch, err := u.CurrentBatchNumber(ctx, req.StoreID, req.RegisterID)
		if err != nil {
			return err
		}

		items, err := u.LockItems(ctx, itemIDs(req.Items))
		if err != nil {
			return err
		}
		taxes, err := u.ActiveTaxes(ctx)
		if err != nil {
			return err
		}
		tenders, err := u.TenderSnapshots(ctx, tenderIDs(req.Tenders))
		if err != nil {
			return err
		}

		plan, err := BuildPlan(PlanInput{
			TransactionNumber: number,
			BatchNumber:       batch,
			Time:              s.now(),
			Request:           req,
			Items:             items,
			Taxes:             taxes,
			Tenders:           tenders,
		})
		if err != nil {
			return err
		}

		if err := u.PersistPlan(ctx, plan); err != nil {
			return err
		}

		resp = &TransactionResponse{
			TransactionNumber: plan.Header.TransactionNumber,
			StoreID:           plan.Header.StoreID,
			BatchNumber:       plan.Header.BatchNumber,
			Subtotal:          plan.Header.Subtotal,
			TaxTotal:          plan.Header.TaxTotal,
			Total:             plan.Header.Total,
			ChangeAmount:      plan.Change,
			ReceiptNumber:     plan.Receipt.ReceiptNumber,
			Timestamp:         plan.Header.Time,
		}
		return nil
	})
	if err != nil {
		if d, ok := AsDecline(err); ok {
			log.Printf("checkout declined for store %d: %s", req.StoreID, d)
		} else {
			log.Printf("checkout failed for store %d: %v", req.StoreID, err)
		}
		return nil, err
	}

	log.Printf("transaction %d committed for store %d (receipt %s)",
		resp.TransactionNumber, resp.StoreID, resp.ReceiptNumber)
	return resp, nil
}

func (s *service) GetTransaction(ctx context.Context, storeID, transactionNumber int64) (*TransactionDetail, error) {
	return s.repo.GetDetail(ctx, storeID, transactionNumber)
}

func (s *service) SearchTransactions(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.repo.Search(ctx, params)
}

// validateRequest rejects malformed requests before any write is
// attempted.
func validateRequest(req CreateTransactionRequest) error {
	if req.StoreID <= 0 {
		return declinef(CodeValidation, "store_id is required")
	}
	if req.RegisterID == "" {
		return declinef(CodeValidation, "register_id is required")
	}
	if req.CashierID <= 0 {
		return declinef(CodeValidation, "cashier_id is required")
	}
	if len(req.Items) == 0 {
		return declinef(CodeValidation, "at least one item is required")
	}
	if len(req.Tenders) == 0 {
		return declinef(CodeValidation, "at least one tender is required")
	}
	return nil
}

// itemIDs returns the distinct item IDs in ascending order. Locking in a
// stable order keeps concurrent checkouts from deadlocking on each other.
func itemIDs(items []RequestItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, line := range items {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func tenderIDs(tenders []RequestTender) []int64 {
	seen := make(map[int64]struct{}, len(tenders))
	ids := make([]int64, 0, len(tenders))
	for _, t := range tenders {
		if _, ok := seen[t.TenderID]; ok {
			continue
		}
		seen[t.TenderID] = struct{}{}
		ids = append(ids, t.TenderID)
	}
	return ids
}
