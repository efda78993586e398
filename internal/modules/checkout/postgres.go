package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL checkout repository. The
// handle is injected; the package holds no global connection state.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) InTransaction(ctx context.Context, fn func(u Unit) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return classifyStoreError(err)
	}
	defer tx.Rollback()

	if err := fn(&pgUnit{tx: tx}); err != nil {
		return classifyStoreError(err)
	}
	if err := tx.Commit(); err != nil {
		return classifyStoreError(err)
	}
	return nil
}

// pgUnit is one checkout's view of the store; every statement runs on the
// same transaction.
type pgUnit struct{ tx *sql.Tx }

// NextTransactionNumber bumps the per-store counter row. The upsert takes
// a row lock, so a concurrent checkout for the same store blocks here
// until this unit commits or aborts, and numbers are never duplicated.
func (u *pgUnit) NextTransactionNumber(ctx context.Context, storeID int64) (int64, error) {
	var number int64
	err := u.tx.QueryRowContext(ctx, `
		INSERT INTO transaction_counters (store_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (store_id)
		DO UPDATE SET last_number = transaction_counters.last_number + 1
		RETURNING last_number`, storeID).Scan(&number)
	if err != nil {
		return 0, fmt.Errorf("allocate transaction number: %w", err)
	}
	return number, nil
}

func (u *pgUnit) CurrentBatchNumber(ctx context.Context, storeID int64, registerID string) (int64, error) {
	var number int64
	err := u.tx.QueryRowContext(ctx, `
		SELECT batch_number FROM batches
		WHERE store_id=$1 AND register_id=$2 AND status=0
		ORDER BY open_time DESC LIMIT 1`, storeID, registerID).Scan(&number)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolve batch: %w", err)
	}
	return number, nil
}

func (u *pgUnit) LockItems(ctx context.Context, itemIDs []int64) (map[int64]*ItemSnapshot, error) {
	rows, err := u.tx.QueryContext(ctx, `
		SELECT id, description, price, cost, quantity, taxable, active
		FROM items
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, pq.Array(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("lock items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64]*ItemSnapshot, len(itemIDs))
	for rows.Next() {
		snap := &ItemSnapshot{}
		if err := rows.Scan(&snap.ID, &snap.Description, &snap.Price, &snap.Cost,
			&snap.Quantity, &snap.Taxable, &snap.Active); err != nil {
			return nil, err
		}
		items[snap.ID] = snap
	}
	return items, rows.Err()
}

func (u *pgUnit) ActiveTaxes(ctx context.Context) ([]TaxRate, error) {
	rows, err := u.tx.QueryContext(ctx, `
		SELECT id, percentage FROM taxes WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	defer rows.Close()

	var taxes []TaxRate
	for rows.Next() {
		var t TaxRate
		if err := rows.Scan(&t.ID, &t.Percentage); err != nil {
			return nil, err
		}
		taxes = append(taxes, t)
	}
	return taxes, rows.Err()
}

func (u *pgUnit) TenderSnapshots(ctx context.Context, tenderIDs []int64) (map[int64]*TenderSnapshot, error) {
	rows, err := u.tx.QueryContext(ctx, `
		SELECT id, active FROM tenders WHERE id = ANY($1)`, pq.Array(tenderIDs))
	if err != nil {
		return nil, fmt.Errorf("read tenders: %w", err)
	}
	defer rows.Close()

	tenders := make(map[int64]*TenderSnapshot, len(tenderIDs))
	for rows.Next() {
		snap := &TenderSnapshot{}
		if err := rows.Scan(&snap.ID, &snap.Active); err != nil {
			return nil, err
		}
		tenders[snap.ID] = snap
	}
	return tenders, rows.Err()
}

func (u *pgUnit) PersistPlan(ctx context.Context, p *Plan) error {
	// The header row only becomes visible when the unit commits, at which
	// point the sale is complete.
	p.Header.Status = StatusCommitted

	_, err := u.tx.ExecContext(ctx, `
		INSERT INTO transactions
		  (transaction_number, store_id, batch_number, time, customer_id,
		   cashier_id, register_id, subtotal, tax_total, total, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.Header.TransactionNumber, p.Header.StoreID, p.Header.BatchNumber,
		p.Header.Time, p.Header.CustomerID, p.Header.CashierID, p.Header.RegisterID,
		p.Header.Subtotal, p.Header.TaxTotal, p.Header.Total, p.Header.Status)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	for _, e := range p.Entries {
		_, err = u.tx.ExecContext(ctx, `
			INSERT INTO transaction_entries
			  (transaction_number, store_id, batch_number, line_number,
			   item_id, price, quantity, taxable, extended_price, cost, comment)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			e.TransactionNumber, e.StoreID, e.BatchNumber, e.LineNumber,
			e.ItemID, e.Price, e.Quantity, e.Taxable, e.ExtendedPrice, e.Cost, e.Comment)
		if err != nil {
			return fmt.Errorf("insert transaction entry %d: %w", e.LineNumber, err)
		}
	}

	for _, t := range p.Taxes {
		_, err = u.tx.ExecContext(ctx, `
			INSERT INTO tax_entries
			  (transaction_number, store_id, batch_number, tax_id,
			   taxable_amount, tax_amount, tax_percentage)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			t.TransactionNumber, t.StoreID, t.BatchNumber, t.TaxID,
			t.TaxableAmount, t.TaxAmount, t.TaxPercentage)
		if err != nil {
			return fmt.Errorf("insert tax entry: %w", err)
		}
	}

	for _, t := range p.Tenders {
		_, err = u.tx.ExecContext(ctx, `
			INSERT INTO tender_entries
			  (transaction_number, store_id, batch_number, tender_id, amount,
			   authorization_code, card_number, card_type, check_number)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			t.TransactionNumber, t.StoreID, t.BatchNumber, t.TenderID, t.Amount,
			t.AuthorizationCode, t.CardNumber, t.CardType, t.CheckNumber)
		if err != nil {
			return fmt.Errorf("insert tender entry: %w", err)
		}
	}

	_, err = u.tx.ExecContext(ctx, `
		INSERT INTO receipts
		  (transaction_number, store_id, batch_number, receipt_number,
		   print_date, reprinted, reprint_count, receipt_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.Receipt.TransactionNumber, p.Receipt.StoreID, p.Receipt.BatchNumber,
		p.Receipt.ReceiptNumber, p.Receipt.PrintDate, p.Receipt.Reprinted,
		p.Receipt.ReprintCount, p.Receipt.ReceiptType)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}

	// The plan validated stock against locked rows, so every guarded
	// decrement must hit exactly one row. Anything else means the atomic
	// unit's contract was broken.
	ids := make([]int64, 0, len(p.Decrements))
	for id := range p.Decrements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		qty := p.Decrements[id]
		res, err := u.tx.ExecContext(ctx, `
			UPDATE items SET quantity = quantity - $1, updated_at = NOW()
			WHERE id = $2 AND quantity >= $1`, qty, id)
		if err != nil {
			return fmt.Errorf("decrement stock for item %d: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected != 1 {
			return fmt.Errorf("%w: stock decrement for item %d touched %d rows", ErrFatalWrite, id, affected)
		}
	}

	return nil
}

// ── reads ─────────────────────────────────────────────────────────────────────

func (r *postgresRepo) GetDetail(ctx context.Context, storeID, transactionNumber int64) (*TransactionDetail, error) {
	header, err := scanTransaction(r.db.QueryRowContext(ctx, `
		SELECT transaction_number, store_id, batch_number, time, customer_id,
		       cashier_id, register_id, subtotal, tax_total, total, status
		FROM transactions
		WHERE store_id=$1 AND transaction_number=$2`, storeID, transactionNumber))
	if err != nil {
		return nil, err
	}
	detail := &TransactionDetail{Transaction: *header}

	rows, err := r.db.QueryContext(ctx, `
		SELECT transaction_number, store_id, batch_number, line_number,
		       item_id, price, quantity, taxable, extended_price, cost, comment
		FROM transaction_entries
		WHERE store_id=$1 AND transaction_number=$2
		ORDER BY line_number`, storeID, transactionNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var e TransactionEntry
		var comment sql.NullString
		if err := rows.Scan(&e.TransactionNumber, &e.StoreID, &e.BatchNumber,
			&e.LineNumber, &e.ItemID, &e.Price, &e.Quantity, &e.Taxable,
			&e.ExtendedPrice, &e.Cost, &comment); err != nil {
			return nil, err
		}
		e.Comment = comment.String
		detail.Entries = append(detail.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	taxRows, err := r.db.QueryContext(ctx, `
		SELECT transaction_number, store_id, batch_number, tax_id,
		       taxable_amount, tax_amount, tax_percentage
		FROM tax_entries
		WHERE store_id=$1 AND transaction_number=$2
		ORDER BY tax_id`, storeID, transactionNumber)
	if err != nil {
		return nil, err
	}
	defer taxRows.Close()
	for taxRows.Next() {
		var t TaxEntry
		if err := taxRows.Scan(&t.TransactionNumber, &t.StoreID, &t.BatchNumber,
			&t.TaxID, &t.TaxableAmount, &t.TaxAmount, &t.TaxPercentage); err != nil {
			return nil, err
		}
		detail.Taxes = append(detail.Taxes, t)
	}
	if err := taxRows.Err(); err != nil {
		return nil, err
	}

	tenderRows, err := r.db.QueryContext(ctx, `
		SELECT transaction_number, store_id, batch_number, tender_id, amount,
		       authorization_code, card_number, card_type, check_number
		FROM tender_entries
		WHERE store_id=$1 AND transaction_number=$2
		ORDER BY tender_id`, storeID, transactionNumber)
	if err != nil {
		return nil, err
	}
	defer tenderRows.Close()
	for tenderRows.Next() {
		var t TenderEntry
		var auth, card, cardType, check sql.NullString
		if err := tenderRows.Scan(&t.TransactionNumber, &t.StoreID, &t.BatchNumber,
			&t.TenderID, &t.Amount, &auth, &card, &cardType, &check); err != nil {
			return nil, err
		}
		t.AuthorizationCode = auth.String
		t.CardNumber = card.String
		t.CardType = cardType.String
		t.CheckNumber = check.String
		detail.Tenders = append(detail.Tenders, t)
	}
	if err := tenderRows.Err(); err != nil {
		return nil, err
	}

	receipt := &Receipt{}
	err = r.db.QueryRowContext(ctx, `
		SELECT transaction_number, store_id, batch_number, receipt_number,
		       print_date, reprinted, reprint_count, receipt_type
		FROM receipts
		WHERE store_id=$1 AND transaction_number=$2`, storeID, transactionNumber).
		Scan(&receipt.TransactionNumber, &receipt.StoreID, &receipt.BatchNumber,
			&receipt.ReceiptNumber, &receipt.PrintDate, &receipt.Reprinted,
			&receipt.ReprintCount, &receipt.ReceiptType)
	if err == nil {
		detail.Receipt = receipt
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return detail, nil
}

func (r *postgresRepo) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	add := func(clause string, value interface{}) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}
	if params.StoreID != nil {
		add(` AND store_id=$%d`, *params.StoreID)
	}
	if params.CustomerID != nil {
		add(` AND customer_id=$%d`, *params.CustomerID)
	}
	if params.CashierID != nil {
		add(` AND cashier_id=$%d`, *params.CashierID)
	}
	if params.MinTotal != nil {
		add(` AND total >= $%d`, *params.MinTotal)
	}
	if params.MaxTotal != nil {
		add(` AND total <= $%d`, *params.MaxTotal)
	}
	if params.From != nil {
		add(` AND time >= $%d`, *params.From)
	}
	if params.To != nil {
		add(` AND time <= $%d`, *params.To)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := `
		SELECT transaction_number, store_id, batch_number, time, customer_id,
		       cashier_id, register_id, subtotal, tax_total, total, status
		FROM transactions` + where +
		fmt.Sprintf(` ORDER BY time DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &SearchResult{Total: total, Page: params.Page, PageSize: params.PageSize}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result.Transactions = append(result.Transactions, t)
	}
	return result, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanTransaction(row rowScanner) (*Transaction, error) {
	t := &Transaction{}
	var customerID sql.NullInt64
	err := row.Scan(&t.TransactionNumber, &t.StoreID, &t.BatchNumber, &t.Time,
		&customerID, &t.CashierID, &t.RegisterID,
		&t.Subtotal, &t.TaxTotal, &t.Total, &t.Status)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		t.CustomerID = &customerID.Int64
	}
	return t, nil
}
