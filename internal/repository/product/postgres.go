package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/FC-COMEBACKS/Gestor-De-Inventario-Backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id::text, name, COALESCE(description, ''), price_cents, stock, units_sold, category_id::text, created_at`

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

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price_cents, stock, category_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + productColumns
	out, err := scanProduct(r.pool.QueryRow(ctx, q, p.Name, p.Description, p.PriceCents, p.Stock, p.CategoryID))
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", p.Name, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	out, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return r.many(ctx, q)
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY created_at DESC`
	return r.many(ctx, q, categoryID)
}

func (r *postgresRepo) ListOutOfStock(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE stock = 0 ORDER BY created_at DESC`
	return r.many(ctx, q)
}

func (r *postgresRepo) ListBestSellers(ctx context.Context, limit int) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE units_sold > 0 ORDER BY units_sold DESC LIMIT $1`
	return r.many(ctx, q, limit)
}

func (r *postgresRepo) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY name ASC`
	return r.many(ctx, q, name)
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2, description = $3, price_cents = $4, stock = $5, category_id = $6
WHERE id = $1
RETURNING ` + productColumns
	out, err := scanProduct(r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.PriceCents, p.Stock, p.CategoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) DecrementStockIfAvailable(ctx context.Context, id string, qty int) error {
	return DecrementStock(ctx, r.pool, id, qty)
}

func (r *postgresRepo) RestoreStock(ctx context.Context, id string, qty int) error {
	return RestoreStock(ctx, r.pool, id, qty)
}

// Querier covers both *pgxpool.Pool and pgx.Tx so the stock protocol can run
// standalone or inside an invoice transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DecrementStock applies "decrement only if stock covers qty" as a single
// conditional UPDATE. Zero rows affected means the product is missing or
// short on stock; a follow-up existence check disambiguates.
func DecrementStock(ctx context.Context, q Querier, id string, qty int) error {
	cmd, err := q.Exec(ctx, `
UPDATE products
SET stock = stock - $2, units_sold = units_sold + $2
WHERE id = $1 AND stock >= $2
`, id, qty)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInsufficientStock
}

// RestoreStock is the inverse of DecrementStock; units_sold is floored at
// zero so products edited outside this flow cannot drive it negative.
func RestoreStock(ctx context.Context, q Querier, id string, qty int) error {
	_, err := q.Exec(ctx, `
UPDATE products
SET stock = stock + $2, units_sold = GREATEST(units_sold - $2, 0)
WHERE id = $1
`, id, qty)
	return err
}

func (r *postgresRepo) many(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.Stock,
		&p.UnitsSold,
		&p.CategoryID,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
