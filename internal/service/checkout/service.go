package checkout

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// Service converts a cart into an order. Validation collects every
// violating product before reporting, and the write side is one
// transaction in the order repository, so a failed checkout leaves cart
// and stock exactly as they were.
type Service struct {
	carts  cartRepo
	orders orderRepo
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
}

type orderRepo interface {
	CreateFromCart(ctx context.Context, cart domain.Cart) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

func New(carts cartRepo, orders orderRepo) *Service {
	return &Service{carts: carts, orders: orders}
}

// Checkout runs the full flow: load cart, validate all quantities against
// stock, then atomically create the order, snapshot its items, decrement
// stock and retire the cart. The repository re-checks stock inside the
// transaction with a conditional decrement, so two concurrent checkouts
// cannot drive stock negative.
func (s *Service) Checkout(ctx context.Context, userID string) (*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCartEmpty
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	var stockErrs domain.StockErrors
	for _, item := range cart.Items {
		if item.Product == nil {
			return nil, domain.ErrNotFound
		}
		if item.Quantity > item.Product.Stock {
			stockErrs = append(stockErrs, domain.InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Requested:   item.Quantity,
				Available:   item.Product.Stock,
			})
		}
	}
	if len(stockErrs) > 0 {
		return nil, stockErrs
	}

	return s.orders.CreateFromCart(ctx, *cart)
}

// History lists the user's past orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.orders.ListByUser(ctx, userID)
}
