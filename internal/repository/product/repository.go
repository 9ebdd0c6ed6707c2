package product

import (
	"context"

	"storefront/internal/domain"
)

type UpsertInput struct {
	CategoryID  string
	Name        string
	Description string
	PriceCents  int64
	Stock       int
}

type Repository interface {
	// List returns all products; a non-empty filter restricts the result to
	// products whose name or description contains it, case-insensitively.
	List(ctx context.Context, filter string) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, in UpsertInput) (*domain.Product, error)
	// Restock raises stock by amount (admin path).
	Restock(ctx context.Context, id string, amount int) (*domain.Product, error)
}
