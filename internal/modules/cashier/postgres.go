package cashier

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL cashier repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateCashier(ctx context.Context, c *Cashier) error {
	query := `
		INSERT INTO cashiers (id, email, password_hash, first_name, last_name, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING cashier_number, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		c.ID, c.Email, c.PasswordHash, c.FirstName, c.LastName, c.Active).
		Scan(&c.CashierNumber, &c.CreatedAt, &c.UpdatedAt)
}

func (r *postgresRepository) GetCashierByEmail(ctx context.Context, email string) (*Cashier, error) {
	c := &Cashier{}
	query := `
		SELECT id, cashier_number, email, password_hash, first_name, last_name, active,
		       created_at, updated_at
		FROM cashiers
		WHERE email = $1
	`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&c.ID,
		&c.CashierNumber,
		&c.Email,
		&c.PasswordHash,
		&c.FirstName,
		&c.LastName,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) GetCashierByID(ctx context.Context, id string) (*Cashier, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	c := &Cashier{}
	query := `
		SELECT id, cashier_number, email, password_hash, first_name, last_name, active,
		       created_at, updated_at
		FROM cashiers
		WHERE id = $1
	`
	err = r.db.QueryRowContext(ctx, query, parsedID).Scan(
		&c.ID,
		&c.CashierNumber,
		&c.Email,
		&c.PasswordHash,
		&c.FirstName,
		&c.LastName,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
