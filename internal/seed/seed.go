package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Category    string
	Name        string
	Description string
	PriceCents  int64
	Stock       int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []string{"Apparel", "Kitchen"}
	categoryIDs := make(map[string]string, len(categories))
	for _, name := range categories {
		id, err := ensureCategory(ctx, pool, name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	products := []productSeed{
		{
			Category:    "Apparel",
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			PriceCents:  1999,
			Stock:       25,
		},
		{
			Category:    "Kitchen",
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			PriceCents:  1299,
			Stock:       40,
		},
		{
			Category:    "Kitchen",
			Name:        "Demo Apron",
			Description: "Canvas apron, one size",
			PriceCents:  2499,
			Stock:       10,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`, name).Scan(&id)
	return id, err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	_, err := pool.Exec(ctx, `
INSERT INTO products (category_id, name, description, price_cents, stock)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (category_id, name) DO UPDATE SET
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock
`, categoryID, p.Name, p.Description, p.PriceCents, p.Stock)
	return err
}
