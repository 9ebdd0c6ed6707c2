package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
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

const productColumns = `id::text, category_id::text, name, COALESCE(description, ''), price_cents, stock, created_at`

func (r *postgresRepo) List(ctx context.Context, filter string) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	args := []interface{}{}
	if filter != "" {
		q = `
SELECT ` + productColumns + `
FROM products
WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
ORDER BY created_at DESC
`
		args = append(args, filter)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list filter=%q error=%v", filter, err)
		return nil, err
	}
	defer rows.Close()

	result, err := scanProducts(rows)
	if err != nil {
		r.logger.Printf("product repo: list rows filter=%q error=%v", filter, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE category_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, in UpsertInput) (*domain.Product, error) {
	const q = `
INSERT INTO products (category_id, name, description, price_cents, stock)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)
ON CONFLICT (category_id, name) DO UPDATE SET
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock
RETURNING ` + productColumns + `
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, in.CategoryID, in.Name, in.Description, in.PriceCents, in.Stock).
		Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%q error=%v", in.Name, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Restock(ctx context.Context, id string, amount int) (*domain.Product, error) {
	const q = `
UPDATE products
SET stock = stock + $2
WHERE id = $1
RETURNING ` + productColumns + `
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id, amount).
		Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	r.logger.Printf("product repo: restock id=%s amount=%d stock=%d", id, amount, p.Stock)
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
