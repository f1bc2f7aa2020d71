package invoice

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	productrepo "github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/repository/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateFromCart(ctx context.Context, ownerID string) (*domain.Invoice, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1 FOR UPDATE`, ownerID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}

	// Product names are snapshotted here; the cart only carries the price
	// snapshot taken when the item was added.
	rows, err := tx.Query(ctx, `
SELECT ci.product_id::text, p.name, ci.quantity, ci.unit_price_cents
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC
`, cartID)
	if err != nil {
		return nil, err
	}
	var lines []domain.InvoiceLine
	for rows.Next() {
		var l domain.InvoiceLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPriceCents); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var invoiceID string
	err = tx.QueryRow(ctx, `
INSERT INTO invoices (owner_id, total_cents)
VALUES ($1, $2)
RETURNING id::text
`, ownerID, domain.LinesTotalCents(lines)).Scan(&invoiceID)
	if err != nil {
		return nil, err
	}

	if err := insertLines(ctx, tx, invoiceID, lines); err != nil {
		return nil, err
	}
	if err := applyStockEffect(ctx, tx, lines); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE carts SET total_cents = 0 WHERE id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("invoice repo: created id=%s owner=%s lines=%d", invoiceID, ownerID, len(lines))
	return r.GetByID(ctx, invoiceID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	const q = `
SELECT id::text, owner_id::text, total_cents, status, COALESCE(void_reason, ''), voided_at, created_at
FROM invoices
WHERE id = $1
`
	var inv domain.Invoice
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&inv.ID,
		&inv.OwnerID,
		&inv.TotalCents,
		&inv.Status,
		&inv.VoidReason,
		&inv.VoidedAt,
		&inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.fetchLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return &inv, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Invoice, error) {
	q := `
SELECT id::text, owner_id::text, total_cents, status, COALESCE(void_reason, ''), voided_at, created_at
FROM invoices
WHERE 1 = 1
`
	var args []interface{}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		q += ` AND owner_id = $1`
	}
	if f.Status != "" {
		args = append(args, f.Status)
		if len(args) == 1 {
			q += ` AND status = $1`
		} else {
			q += ` AND status = $2`
		}
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(
			&inv.ID,
			&inv.OwnerID,
			&inv.TotalCents,
			&inv.Status,
			&inv.VoidReason,
			&inv.VoidedAt,
			&inv.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		lines, err := r.fetchLines(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Lines = lines
	}
	return result, nil
}

func (r *postgresRepo) ReplaceLines(ctx context.Context, id string, lines []domain.InvoiceLine) (*domain.Invoice, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := lockActive(ctx, tx, id); err != nil {
		return nil, err
	}

	current, err := linesForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := reverseStockEffect(ctx, tx, current); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1`, id); err != nil {
		return nil, err
	}
	if err := insertLines(ctx, tx, id, lines); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE invoices SET total_cents = $2 WHERE id = $1`, id, domain.LinesTotalCents(lines)); err != nil {
		return nil, err
	}

	if err := applyStockEffect(ctx, tx, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("invoice repo: replaced lines id=%s lines=%d", id, len(lines))
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Void(ctx context.Context, id, reason string) (*domain.Invoice, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := lockActive(ctx, tx, id); err != nil {
		return nil, err
	}

	current, err := linesForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := reverseStockEffect(ctx, tx, current); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
UPDATE invoices
SET status = $2, void_reason = $3, voided_at = now()
WHERE id = $1
`, id, domain.InvoiceVoided, reason); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("invoice repo: voided id=%s reason=%q", id, reason)
	return r.GetByID(ctx, id)
}

// lockActive row-locks the invoice for the duration of the transaction and
// rejects operations on voided invoices, so a concurrent void/edit on the
// same invoice serializes here.
func lockActive(ctx context.Context, tx pgx.Tx, id string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM invoices WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if status == domain.InvoiceVoided {
		return domain.ErrAlreadyVoided
	}
	return nil
}

func linesForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) ([]domain.InvoiceLine, error) {
	rows, err := tx.Query(ctx, `
SELECT product_id::text, product_name, quantity, unit_price_cents
FROM invoice_lines
WHERE invoice_id = $1
ORDER BY position ASC
`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.InvoiceLine
	for rows.Next() {
		var l domain.InvoiceLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPriceCents); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func insertLines(ctx context.Context, tx pgx.Tx, invoiceID string, lines []domain.InvoiceLine) error {
	for i, l := range lines {
		if _, err := tx.Exec(ctx, `
INSERT INTO invoice_lines (invoice_id, product_id, product_name, quantity, unit_price_cents, position)
VALUES ($1, $2, $3, $4, $5, $6)
`, invoiceID, l.ProductID, l.ProductName, l.Quantity, l.UnitPriceCents, i); err != nil {
			return err
		}
	}
	return nil
}

// applyStockEffect decrements stock for every line. Lines are processed in
// ascending product order so two concurrent invoices touching the same
// products lock them in the same sequence.
func applyStockEffect(ctx context.Context, tx pgx.Tx, lines []domain.InvoiceLine) error {
	for _, l := range sortedByProduct(lines) {
		if err := productrepo.DecrementStock(ctx, tx, l.ProductID, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// reverseStockEffect restores stock for every line. Products deleted since
// the sale are skipped; a missing product never blocks a void or edit.
func reverseStockEffect(ctx context.Context, tx pgx.Tx, lines []domain.InvoiceLine) error {
	for _, l := range sortedByProduct(lines) {
		if err := productrepo.RestoreStock(ctx, tx, l.ProductID, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func sortedByProduct(lines []domain.InvoiceLine) []domain.InvoiceLine {
	out := make([]domain.InvoiceLine, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

func (r *postgresRepo) fetchLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT product_id::text, product_name, quantity, unit_price_cents
FROM invoice_lines
WHERE invoice_id = $1
ORDER BY position ASC
`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.InvoiceLine
	for rows.Next() {
		var l domain.InvoiceLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPriceCents); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
