package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	stores    map[int64]*Store
	registers map[int64]*Register
	updated   *Register
}

func (r *fakeRepo) Create(_ context.Context, s *Store) error {
	s.ID = int64(len(r.stores) + 1)
	if r.stores == nil {
		r.stores = make(map[int64]*Store)
	}
	r.stores[s.ID] = s
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (r *fakeRepo) List(context.Context) ([]*Store, error) { return nil, nil }

func (r *fakeRepo) CreateRegister(_ context.Context, reg *Register) error {
	reg.ID = int64(len(r.registers) + 1)
	if r.registers == nil {
		r.registers = make(map[int64]*Register)
	}
	r.registers[reg.ID] = reg
	return nil
}

func (r *fakeRepo) GetRegister(_ context.Context, id int64) (*Register, error) {
	reg, ok := r.registers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return reg, nil
}

func (r *fakeRepo) ListRegisters(_ context.Context, storeID int64) ([]*Register, error) {
	var out []*Register
	for _, reg := range r.registers {
		if reg.StoreID == storeID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateRegister(_ context.Context, reg *Register) error {
	r.updated = reg
	return nil
}

func TestCreateRegister(t *testing.T) {
	repo := &fakeRepo{stores: map[int64]*Store{1: {ID: 1, Name: "Main St"}}}
	svc := NewService(repo)

	reg, err := svc.CreateRegister(context.Background(), 1, CreateRegisterRequest{Name: "REG-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), reg.StoreID)
	assert.Equal(t, "REG-1", reg.Name)
	assert.True(t, reg.Active)
}

func TestCreateRegisterValidation(t *testing.T) {
	repo := &fakeRepo{stores: map[int64]*Store{1: {ID: 1}}}
	svc := NewService(repo)

	_, err := svc.CreateRegister(context.Background(), 1, CreateRegisterRequest{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateRegisterUnknownStore(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.CreateRegister(context.Background(), 9, CreateRegisterRequest{Name: "REG-1"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdateRegisterRetires(t *testing.T) {
	inactive := false
	repo := &fakeRepo{registers: map[int64]*Register{1: {ID: 1, StoreID: 1, Name: "REG-1", Active: true}}}
	svc := NewService(repo)

	reg, err := svc.UpdateRegister(context.Background(), 1, UpdateRegisterRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, reg.Active)
	assert.Equal(t, "REG-1", reg.Name)
	require.NotNil(t, repo.updated)
}

func TestUpdateRegisterRejectsEmptyName(t *testing.T) {
	empty := ""
	repo := &fakeRepo{registers: map[int64]*Register{1: {ID: 1, Name: "REG-1", Active: true}}}
	svc := NewService(repo)

	_, err := svc.UpdateRegister(context.Background(), 1, UpdateRegisterRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateStoreRequiresName(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.CreateStore(context.Background(), CreateStoreRequest{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
