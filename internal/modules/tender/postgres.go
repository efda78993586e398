package tender

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL tender repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Tender) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO tenders
		  (code, description, tender_type, opens_cash_drawer, allow_over_tender, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		t.Code, t.Description, t.TenderType, t.OpensCashDrawer, t.AllowOverTender, t.Active).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Tender, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, code, description, tender_type, opens_cash_drawer, allow_over_tender,
		       active, created_at, updated_at
		FROM tenders WHERE id=$1`, id))
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]*Tender, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, description, tender_type, opens_cash_drawer, allow_over_tender,
		       active, created_at, updated_at
		FROM tenders WHERE active ORDER BY description`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tenders []*Tender
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, t)
	}
	return tenders, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Tender, error) {
	t := &Tender{}
	err := row.Scan(&t.ID, &t.Code, &t.Description, &t.TenderType,
		&t.OpensCashDrawer, &t.AllowOverTender, &t.Active,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}
