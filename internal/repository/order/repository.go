package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// CreateFromCart converts a loaded cart into an order in one
	// transaction: order row, one order_items row per cart item, a
	// conditional stock decrement per product, then the cart row itself.
	// A decrement that finds too little stock rolls the whole transaction
	// back and surfaces as domain.StockErrors.
	CreateFromCart(ctx context.Context, cart domain.Cart) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
