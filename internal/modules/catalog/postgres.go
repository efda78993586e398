package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, item *Item) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO items
		  (lookup_code, description, category_id, department_id,
		   price, cost, quantity, taxable, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at`,
		item.LookupCode, item.Description, item.CategoryID, item.DepartmentID,
		item.Price, item.Cost, item.Quantity, item.Taxable, item.Active).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Item, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, lookup_code, description, category_id, department_id,
		       price, cost, quantity, taxable, active, created_at, updated_at
		FROM items WHERE id=$1`, id))
}

func (r *postgresRepo) GetByCode(ctx context.Context, lookupCode string) (*Item, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, lookup_code, description, category_id, department_id,
		       price, cost, quantity, taxable, active, created_at, updated_at
		FROM items WHERE lookup_code=$1 AND active`, lookupCode))
}

func (r *postgresRepo) Search(ctx context.Context, search string, categoryID *int64) ([]*Item, error) {
	query := `
		SELECT id, lookup_code, description, category_id, department_id,
		       price, cost, quantity, taxable, active, created_at, updated_at
		FROM items WHERE active`
	args := []interface{}{}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(` AND (lookup_code ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	if categoryID != nil {
		args = append(args, *categoryID)
		query += fmt.Sprintf(` AND category_id=$%d`, len(args))
	}
	query += ` ORDER BY description LIMIT 100`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AdjustStock applies a signed delta with a non-negativity guard in the
// UPDATE itself, so a lost-update race cannot slip quantity below zero.
// Zero rows affected means either the item is missing or the guard fired;
// the follow-up existence check tells the two apart.
func (r *postgresRepo) AdjustStock(ctx context.Context, id int64, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2 AND quantity + $1 >= 0`, delta, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrItemNotFound
		}
		return ErrStockWouldGoNegative
	}
	return nil
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Item, error) {
	item := &Item{}
	var categoryID, departmentID sql.NullInt64
	err := row.Scan(&item.ID, &item.LookupCode, &item.Description,
		&categoryID, &departmentID, &item.Price, &item.Cost,
		&item.Quantity, &item.Taxable, &item.Active,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		item.CategoryID = &categoryID.Int64
	}
	if departmentID.Valid {
		item.DepartmentID = &departmentID.Int64
	}
	return item, nil
}
