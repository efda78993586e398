package tax

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL tax repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Tax) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO taxes (code, description, percentage, active)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at`,
		t.Code, t.Description, t.Percentage, t.Active).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Tax, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, code, description, percentage, active, created_at, updated_at
		FROM taxes WHERE id=$1`, id))
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]*Tax, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, description, percentage, active, created_at, updated_at
		FROM taxes WHERE active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var taxes []*Tax
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		taxes = append(taxes, t)
	}
	return taxes, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Tax, error) {
	t := &Tax{}
	err := row.Scan(&t.ID, &t.Code, &t.Description, &t.Percentage,
		&t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
