package order

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

func (r *postgresRepo) CreateFromCart(ctx context.Context, cart domain.Cart) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var order domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, is_completed)
VALUES ($1, true)
RETURNING id::text, user_id::text, is_completed, created_at
`, cart.UserID).Scan(&order.ID, &order.UserID, &order.IsCompleted, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	// Decrement only when enough stock remains; a miss means a concurrent
	// checkout got there first. All misses are collected before giving up
	// so the caller can report every affected product at once.
	var stockErrs domain.StockErrors
	for _, item := range cart.Items {
		cmd, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - $2
WHERE id = $1 AND stock >= $2
`, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			var name string
			var available int
			err := tx.QueryRow(ctx, `SELECT name, stock FROM products WHERE id = $1`, item.ProductID).Scan(&name, &available)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, domain.ErrNotFound
				}
				return nil, err
			}
			stockErrs = append(stockErrs, domain.InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: name,
				Requested:   item.Quantity,
				Available:   available,
			})
			continue
		}

		var line domain.OrderItem
		err = tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, product_name, price_cents, quantity)
SELECT $1, p.id, p.name, p.price_cents, $3
FROM products p
WHERE p.id = $2
RETURNING id::text, order_id::text, product_id::text, product_name, price_cents, quantity
`, order.ID, item.ProductID, item.Quantity).
			Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.PriceCents, &line.Quantity)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, line)
	}

	if len(stockErrs) > 0 {
		r.logger.Printf("order repo: checkout user=%s rejected, %d products short", cart.UserID, len(stockErrs))
		return nil, stockErrs
	}

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cart.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created order=%s user=%s items=%d", order.ID, order.UserID, len(order.Items))
	return &order, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, is_completed, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.IsCompleted, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.loadItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, is_completed, created_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(&o.ID, &o.UserID, &o.IsCompleted, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, product_id::text, product_name, price_cents, quantity
FROM order_items
WHERE order_id = $1
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var line domain.OrderItem
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.PriceCents, &line.Quantity); err != nil {
			return nil, err
		}
		items = append(items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
