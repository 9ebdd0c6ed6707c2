package cart

import (
	"context"

	"storefront/internal/domain"
)

// Outcome says whether a get-or-create returned an existing row or made a
// new one, so call sites can switch on it exhaustively.
type Outcome int

const (
	Found Outcome = iota
	Created
)

type Repository interface {
	// GetOrCreate returns the user's cart, creating an empty one if needed.
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, Outcome, error)
	// GetByUser loads the user's cart with items and their products, or
	// domain.ErrNotFound when the user has no cart.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// GetItem loads one cart item with its product.
	GetItem(ctx context.Context, itemID string) (*domain.CartItem, error)
	InsertItem(ctx context.Context, cartID, productID string, quantity int) (*domain.CartItem, error)
	SetItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	// Delete removes the cart; items go with it via cascade.
	Delete(ctx context.Context, cartID string) error
}
