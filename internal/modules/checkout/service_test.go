package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUnit struct {
	lastNumber int64
	batch      int64
	items      map[int64]*ItemSnapshot
	taxes      []TaxRate
	tenders    map[int64]*TenderSnapshot

	persisted  *Plan
	persistErr error
}

func (u *fakeUnit) NextTransactionNumber(_ context.Context, _ int64) (int64, error) {
	u.lastNumber++
	return u.lastNumber, nil
}

func (u *fakeUnit) CurrentBatchNumber(_ context.Context, _ int64, _ string) (int64, error) {
	if u.batch == 0 {
		return 1, nil
	}
	return u.batch, nil
}

func (u *fakeUnit) LockItems(_ context.Context, ids []int64) (map[int64]*ItemSnapshot, error) {
	found := make(map[int64]*ItemSnapshot, len(ids))
	for _, id := range ids {
		if snap, ok := u.items[id]; ok {
			found[id] = snap
		}
	}
	return found, nil
}

func (u *fakeUnit) ActiveTaxes(_ context.Context) ([]TaxRate, error) { return u.taxes, nil }

func (u *fakeUnit) TenderSnapshots(_ context.Context, ids []int64) (map[int64]*TenderSnapshot, error) {
	found := make(map[int64]*TenderSnapshot, len(ids))
	for _, id := range ids {
		if snap, ok := u.tenders[id]; ok {
			found[id] = snap
		}
	}
	return found, nil
}

func (u *fakeUnit) PersistPlan(_ context.Context, p *Plan) error {
	if u.persistErr != nil {
		return u.persistErr
	}
	u.persisted = p
	return nil
}

type fakeRepo struct {
	unit      *fakeUnit
	calls     int
	committed bool

	searchParams *SearchParams
}

func (r *fakeRepo) InTransaction(_ context.Context, fn func(u Unit) error) error {
	r.calls++
	if err := fn(r.unit); err != nil {
		// Rolled back: nothing the unit wrote survives.
		r.unit.persisted = nil
		return err
	}
	r.committed = true
	return nil
}

func (r *fakeRepo) GetDetail(context.Context, int64, int64) (*TransactionDetail, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) Search(_ context.Context, params SearchParams) (*SearchResult, error) {
	r.searchParams = &params
	return &SearchResult{}, nil
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{unit: &fakeUnit{
		batch: 3,
		items: map[int64]*ItemSnapshot{
			100: {ID: 100, Description: "Widget", Price: dec("10.00"), Cost: dec("6.00"), Quantity: 10, Taxable: true, Active: true},
		},
		taxes:   []TaxRate{{ID: 1, Percentage: dec("8")}},
		tenders: map[int64]*TenderSnapshot{1: {ID: 1, Active: true}},
	}}
}

func validRequest() CreateTransactionRequest {
	return CreateTransactionRequest{
		StoreID:    1,
		RegisterID: "REG-1",
		CashierID:  7,
		Items:      []RequestItem{{ItemID: 100, Quantity: 2}},
		Tenders:    []RequestTender{{TenderID: 1, Amount: dec("25.00")}},
	}
}

func TestCheckoutCommits(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 0)

	resp, err := svc.Checkout(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, repo.committed)
	assert.Equal(t, int64(1), resp.TransactionNumber)
	assert.Equal(t, int64(3), resp.BatchNumber)
	assert.Equal(t, "20.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "1.60", resp.TaxTotal.StringFixed(2))
	assert.Equal(t, "21.60", resp.Total.StringFixed(2))
	assert.Equal(t, "3.40", resp.ChangeAmount.StringFixed(2))
	require.NotNil(t, repo.unit.persisted)
	assert.Len(t, repo.unit.persisted.Entries, 1)
}

func TestCheckoutValidationRejectedBeforeAnyWrite(t *testing.T) {
	cases := map[string]func(*CreateTransactionRequest){
		"missing store":    func(r *CreateTransactionRequest) { r.StoreID = 0 },
		"missing register": func(r *CreateTransactionRequest) { r.RegisterID = "" },
		"missing cashier":  func(r *CreateTransactionRequest) { r.CashierID = 0 },
		"no items":         func(r *CreateTransactionRequest) { r.Items = nil },
		"no tenders":       func(r *CreateTransactionRequest) { r.Tenders = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := NewService(repo, 0)

			req := validRequest()
			mutate(&req)

			_, err := svc.Checkout(context.Background(), req)
			d, ok := AsDecline(err)
			require.True(t, ok)
			assert.Equal(t, CodeValidation, d.Code)
			assert.Equal(t, 0, repo.calls, "store must not be touched")
		})
	}
}

func TestCheckoutDeclineAbortsUnit(t *testing.T) {
	repo := newFakeRepo()
	repo.unit.items[100].Quantity = 1
	svc := NewService(repo, 0)

	_, err := svc.Checkout(context.Background(), validRequest())
	d, ok := AsDecline(err)
	require.True(t, ok)
	assert.Equal(t, CodeInsufficientStock, d.Code)
	assert.False(t, repo.committed)
	assert.Nil(t, repo.unit.persisted)
}

func TestCheckoutPersistFailureAborts(t *testing.T) {
	repo := newFakeRepo()
	repo.unit.persistErr = errors.New("disk on fire")
	svc := NewService(repo, 0)

	_, err := svc.Checkout(context.Background(), validRequest())
	require.Error(t, err)
	assert.False(t, repo.committed)
	assert.Nil(t, repo.unit.persisted)
}

func TestCheckoutNumbersStrictlyIncrease(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 0)

	var last int64
	for i := 0; i < 5; i++ {
		resp, err := svc.Checkout(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Greater(t, resp.TransactionNumber, last)
		last = resp.TransactionNumber
	}
}

func TestSearchNormalizesPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, 0)

	_, err := svc.SearchTransactions(context.Background(), SearchParams{Page: -4, PageSize: 9999})
	require.NoError(t, err)
	require.NotNil(t, repo.searchParams)
	assert.Equal(t, 1, repo.searchParams.Page)
	assert.Equal(t, 20, repo.searchParams.PageSize)
}
