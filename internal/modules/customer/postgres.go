package customer

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL customer repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Customer) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO customers
		  (account_number, first_name, last_name, company, phone_number, email)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		c.AccountNumber, c.FirstName, c.LastName, c.Company, c.PhoneNumber, c.Email).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Customer, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, account_number, first_name, last_name, company, phone_number, email,
		       created_at, updated_at
		FROM customers WHERE id=$1`, id))
}

func (r *postgresRepo) GetByAccountNumber(ctx context.Context, accountNumber string) (*Customer, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, account_number, first_name, last_name, company, phone_number, email,
		       created_at, updated_at
		FROM customers WHERE account_number=$1`, accountNumber))
}

func (r *postgresRepo) Search(ctx context.Context, search string) ([]*Customer, error) {
	pattern := "%" + search + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_number, first_name, last_name, company, phone_number, email,
		       created_at, updated_at
		FROM customers
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR company ILIKE $1
		   OR account_number ILIKE $1 OR phone_number ILIKE $1
		ORDER BY last_name, first_name
		LIMIT 20`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var customers []*Customer
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepo) scan(row rowScanner) (*Customer, error) {
	c := &Customer{}
	var company, phone, email sql.NullString
	err := row.Scan(&c.ID, &c.AccountNumber, &c.FirstName, &c.LastName,
		&company, &phone, &email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Company = company.String
	c.PhoneNumber = phone.String
	c.Email = email.String
	return c, nil
}
