package batch

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	current *Batch
	byNum   map[int64]*Batch
	opened  *Batch
	openErr error
	closed  bool
}

func (r *fakeRepo) Open(_ context.Context, b *Batch) error {
	if r.openErr != nil {
		return r.openErr
	}
	b.BatchNumber = 1
	if r.current != nil {
		b.BatchNumber = r.current.BatchNumber + 1
	}
	r.opened = b
	return nil
}

func (r *fakeRepo) GetCurrent(_ context.Context, _ int64) (*Batch, error) {
	if r.current == nil {
		return nil, sql.ErrNoRows
	}
	return r.current, nil
}

func (r *fakeRepo) GetByNumber(_ context.Context, _ int64, batchNumber int64) (*Batch, error) {
	b, ok := r.byNum[batchNumber]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return b, nil
}

func (r *fakeRepo) Close(_ context.Context, storeID, batchNumber, cashierID int64) (*Batch, error) {
	r.closed = true
	b := r.byNum[batchNumber]
	b.Status = StatusClosed
	b.CloseCashierID = &cashierID
	return b, nil
}

func (r *fakeRepo) History(_ context.Context, _ int64, _ int) ([]*Batch, error) {
	return nil, nil
}

func TestOpenBatch(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	b, err := svc.OpenBatch(context.Background(), OpenBatchRequest{StoreID: 1, RegisterID: "REG-1", CashierID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.BatchNumber)
	assert.Equal(t, StatusOpen, b.Status)
	assert.Equal(t, int64(7), b.OpenCashierID)
}

func TestOpenBatchRejectsSecondOpen(t *testing.T) {
	repo := &fakeRepo{current: &Batch{StoreID: 1, BatchNumber: 4, Status: StatusOpen}}
	svc := NewService(repo)

	_, err := svc.OpenBatch(context.Background(), OpenBatchRequest{StoreID: 1, RegisterID: "REG-1", CashierID: 7})
	assert.ErrorIs(t, err, ErrBatchAlreadyOpen)
	assert.Nil(t, repo.opened)
}

// Two concurrent opens can both pass the GetCurrent check; the loser hits
// the one-open-batch unique index and must come back as "already open",
// not as a raw driver error.
func TestOpenBatchLostRaceReportsAlreadyOpen(t *testing.T) {
	repo := &fakeRepo{openErr: &pq.Error{Code: "23505"}}
	svc := NewService(repo)

	_, err := svc.OpenBatch(context.Background(), OpenBatchRequest{StoreID: 1, RegisterID: "REG-1", CashierID: 7})
	assert.ErrorIs(t, err, ErrBatchAlreadyOpen)
}

func TestOpenBatchValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.OpenBatch(context.Background(), OpenBatchRequest{RegisterID: "REG-1", CashierID: 7})
	assert.Error(t, err)

	_, err = svc.OpenBatch(context.Background(), OpenBatchRequest{StoreID: 1, CashierID: 7})
	assert.Error(t, err)
}

func TestCloseBatch(t *testing.T) {
	repo := &fakeRepo{byNum: map[int64]*Batch{4: {StoreID: 1, BatchNumber: 4, Status: StatusOpen}}}
	svc := NewService(repo)

	b, err := svc.CloseBatch(context.Background(), CloseBatchRequest{StoreID: 1, BatchNumber: 4, CashierID: 7})
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, b.Status)
	require.NotNil(t, b.CloseCashierID)
	assert.Equal(t, int64(7), *b.CloseCashierID)
}

func TestCloseBatchAlreadyClosed(t *testing.T) {
	repo := &fakeRepo{byNum: map[int64]*Batch{4: {StoreID: 1, BatchNumber: 4, Status: StatusClosed}}}
	svc := NewService(repo)

	_, err := svc.CloseBatch(context.Background(), CloseBatchRequest{StoreID: 1, BatchNumber: 4, CashierID: 7})
	assert.ErrorIs(t, err, ErrBatchNotOpen)
	assert.False(t, repo.closed)
}

func TestCloseBatchNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{byNum: map[int64]*Batch{}})

	_, err := svc.CloseBatch(context.Background(), CloseBatchRequest{StoreID: 1, BatchNumber: 9, CashierID: 7})
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestGetCurrentBatchNoneOpen(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.GetCurrentBatch(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoOpenBatch)
}
