package store

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL store repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Store) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO stores (name, address, city, phone, active)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at, updated_at`,
		s.Name, s.Address, s.City, s.Phone, s.Active).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Store, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, name, address, city, phone, active, created_at, updated_at
		FROM stores WHERE id=$1`, id))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, address, city, phone, active, created_at, updated_at
		FROM stores ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var stores []*Store
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *postgresRepo) CreateRegister(ctx context.Context, reg *Register) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO registers (store_id, name, active)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at`,
		reg.StoreID, reg.Name, reg.Active).
		Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

func (r *postgresRepo) GetRegister(ctx context.Context, id int64) (*Register, error) {
	return r.scanRegister(r.db.QueryRowContext(ctx, `
		SELECT id, store_id, name, active, created_at, updated_at
		FROM registers WHERE id=$1`, id))
}

func (r *postgresRepo) ListRegisters(ctx context.Context, storeID int64) ([]*Register, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, name, active, created_at, updated_at
		FROM registers WHERE store_id=$1 ORDER BY name`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var registers []*Register
	for rows.Next() {
		reg, err := r.scanRegister(rows)
		if err != nil {
			return nil, err
		}
		registers = append(registers, reg)
	}
	return registers, rows.Err()
}

func (r *postgresRepo) UpdateRegister(ctx context.Context, reg *Register) error {
	return r.db.QueryRowContext(ctx, `
		UPDATE registers SET name=$1, active=$2, updated_at=NOW()
		WHERE id=$3
		RETURNING updated_at`,
		reg.Name, reg.Active, reg.ID).
		Scan(&reg.UpdatedAt)
}

// ── scanners ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Store, error) {
	s := &Store{}
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.Phone,
		&s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) scanRegister(row rowScanner) (*Register, error) {
	reg := &Register{}
	err := row.Scan(&reg.ID, &reg.StoreID, &reg.Name, &reg.Active,
		&reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}
