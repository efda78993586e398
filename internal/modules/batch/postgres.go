package batch

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL batch repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Open assigns the next batch number for the store and inserts the open
// batch in one statement. The (store_id, batch_number) PK rules out
// duplicate numbers; the partial unique index on open batches rules out
// two open batches for one store, surfacing the loser as a unique
// violation.
func (r *postgresRepo) Open(ctx context.Context, b *Batch) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO batches
		  (batch_number, store_id, register_id, status, open_time, open_cashier_id)
		SELECT COALESCE(MAX(batch_number), 0) + 1, $1, $2, $3, NOW(), $4
		FROM batches WHERE store_id = $1
		RETURNING batch_number, open_time, created_at, updated_at`,
		b.StoreID, b.RegisterID, b.Status, b.OpenCashierID).
		Scan(&b.BatchNumber, &b.OpenTime, &b.CreatedAt, &b.UpdatedAt)
}

func (r *postgresRepo) GetCurrent(ctx context.Context, storeID int64) (*Batch, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT batch_number, store_id, register_id, status, open_time, close_time,
		       open_cashier_id, close_cashier_id, created_at, updated_at
		FROM batches
		WHERE store_id=$1 AND status=$2
		ORDER BY open_time DESC LIMIT 1`, storeID, StatusOpen))
}

func (r *postgresRepo) GetByNumber(ctx context.Context, storeID, batchNumber int64) (*Batch, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT batch_number, store_id, register_id, status, open_time, close_time,
		       open_cashier_id, close_cashier_id, created_at, updated_at
		FROM batches
		WHERE store_id=$1 AND batch_number=$2`, storeID, batchNumber))
}

func (r *postgresRepo) Close(ctx context.Context, storeID, batchNumber, cashierID int64) (*Batch, error) {
	_, err := r.db.ExecContext(ctx, `
		UPDATE batches
		SET status=$1, close_time=NOW(), close_cashier_id=$2, updated_at=NOW()
		WHERE store_id=$3 AND batch_number=$4`,
		StatusClosed, cashierID, storeID, batchNumber)
	if err != nil {
		return nil, err
	}
	return r.GetByNumber(ctx, storeID, batchNumber)
}

func (r *postgresRepo) History(ctx context.Context, storeID int64, limit int) ([]*Batch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT batch_number, store_id, register_id, status, open_time, close_time,
		       open_cashier_id, close_cashier_id, created_at, updated_at
		FROM batches
		WHERE store_id=$1
		ORDER BY open_time DESC LIMIT $2`, storeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var batches []*Batch
	for rows.Next() {
		b, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Batch, error) {
	b := &Batch{}
	var closeTime sql.NullTime
	var closeCashierID sql.NullInt64
	err := row.Scan(&b.BatchNumber, &b.StoreID, &b.RegisterID, &b.Status,
		&b.OpenTime, &closeTime, &b.OpenCashierID, &closeCashierID,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if closeTime.Valid {
		ct := closeTime.Time
		b.CloseTime = &ct
	}
	if closeCashierID.Valid {
		b.CloseCashierID = &closeCashierID.Int64
	}
	return b, nil
}
