package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items    map[int64]*Item
	adjusted []int
}

func (r *fakeRepo) Create(_ context.Context, item *Item) error {
	item.ID = int64(len(r.items) + 1)
	if r.items == nil {
		r.items = make(map[int64]*Item)
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	return r.items[id], nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*Item, error) {
	for _, item := range r.items {
		if item.LookupCode == code {
			return item, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Search(context.Context, string, *int64) ([]*Item, error) { return nil, nil }

func (r *fakeRepo) AdjustStock(_ context.Context, id int64, delta int) error {
	item, ok := r.items[id]
	if !ok {
		return ErrItemNotFound
	}
	if item.Quantity+delta < 0 {
		return ErrStockWouldGoNegative
	}
	item.Quantity += delta
	r.adjusted = append(r.adjusted, delta)
	return nil
}

func TestCreateItem(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		LookupCode:  "WID-1",
		Description: "Widget",
		Price:       decimal.RequireFromString("10.00"),
		Quantity:    5,
		Taxable:     true,
	})
	require.NoError(t, err)
	assert.True(t, item.Active)
	assert.Equal(t, 5, item.Quantity)
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.CreateItem(context.Background(), CreateItemRequest{Description: "Widget"})
	assert.Error(t, err)

	_, err = svc.CreateItem(context.Background(), CreateItemRequest{LookupCode: "WID-1"})
	assert.Error(t, err)

	_, err = svc.CreateItem(context.Background(), CreateItemRequest{
		LookupCode:  "WID-1",
		Description: "Widget",
		Price:       decimal.RequireFromString("-1"),
	})
	assert.Error(t, err)
}

func TestAdjustStock(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*Item{1: {ID: 1, Quantity: 5}}}
	svc := NewService(repo)

	item, err := svc.AdjustStock(context.Background(), 1, AdjustStockRequest{Delta: -3})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestAdjustStockCannotGoNegative(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*Item{1: {ID: 1, Quantity: 2}}}
	svc := NewService(repo)

	_, err := svc.AdjustStock(context.Background(), 1, AdjustStockRequest{Delta: -3})
	assert.ErrorIs(t, err, ErrStockWouldGoNegative)
	assert.Equal(t, 2, repo.items[1].Quantity)
}

func TestAdjustStockUnknownItem(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*Item{}}
	svc := NewService(repo)

	_, err := svc.AdjustStock(context.Background(), 99, AdjustStockRequest{Delta: -1})
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.NotErrorIs(t, err, ErrStockWouldGoNegative)
}

func TestCreateItemValidationWrapsSentinel(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.CreateItem(context.Background(), CreateItemRequest{Description: "Widget"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAdjustStockRejectsZeroDelta(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*Item{1: {ID: 1, Quantity: 2}}}
	svc := NewService(repo)

	_, err := svc.AdjustStock(context.Background(), 1, AdjustStockRequest{})
	assert.Error(t, err)
	assert.Empty(t, repo.adjusted)
}
