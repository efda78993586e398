package batch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNoOpenBatch is returned when a store has no open batch.
var ErrNoOpenBatch = errors.New("no open batch for store")

// ErrBatchAlreadyOpen is returned when a store already has an open batch.
var ErrBatchAlreadyOpen = errors.New("a batch is already open for this store")

// ErrBatchNotFound is returned when the requested batch does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// ErrBatchNotOpen is returned when closing a batch that is not open.
var ErrBatchNotOpen = errors.New("batch is not open")

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Service defines batch business logic.
type Service interface {
	OpenBatch(ctx context.Context, req OpenBatchRequest) (*Batch, error)
	CloseBatch(ctx context.Context, req CloseBatchRequest) (*Batch, error)
	GetCurrentBatch(ctx context.Context, storeID int64) (*Batch, error)
	GetBatchHistory(ctx context.Context, storeID int64, limit int) ([]*Batch, error)
}

type service struct{ repo Repository }

// NewService creates a new batch service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) OpenBatch(ctx context.Context, req OpenBatchRequest) (*Batch, error) {
	if req.StoreID <= 0 {
		return nil, fmt.Errorf("%w: store_id is required", ErrInvalidRequest)
	}
	if req.RegisterID == "" {
		return nil, fmt.Errorf("%w: register_id is required", ErrInvalidRequest)
	}
	if req.CashierID <= 0 {
		return nil, fmt.Errorf("%w: cashier_id is required", ErrInvalidRequest)
	}

	current, err := s.repo.GetCurrent(ctx, req.StoreID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if current != nil {
		return nil, fmt.Errorf("%w: close batch %d first", ErrBatchAlreadyOpen, current.BatchNumber)
	}

	b := &Batch{
		StoreID:       req.StoreID,
		RegisterID:    req.RegisterID,
		Status:        StatusOpen,
		OpenCashierID: req.CashierID,
	}
	if err := s.repo.Open(ctx, b); err != nil {
		// The one-open-batch index catches the race two concurrent opens
		// can win past GetCurrent.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrBatchAlreadyOpen
		}
		return nil, err
	}
	return b, nil
}

func (s *service) CloseBatch(ctx context.Context, req CloseBatchRequest) (*Batch, error) {
	b, err := s.repo.GetByNumber(ctx, req.StoreID, req.BatchNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	if b.Status != StatusOpen {
		return nil, ErrBatchNotOpen
	}
	return s.repo.Close(ctx, req.StoreID, req.BatchNumber, req.CashierID)
}

func (s *service) GetCurrentBatch(ctx context.Context, storeID int64) (*Batch, error) {
	b, err := s.repo.GetCurrent(ctx, storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoOpenBatch
		}
		return nil, err
	}
	return b, nil
}

func (s *service) GetBatchHistory(ctx context.Context, storeID int64, limit int) ([]*Batch, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.History(ctx, storeID, limit)
}
