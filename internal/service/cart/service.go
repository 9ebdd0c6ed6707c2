package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

// Service is the cart manager: it owns every mutation of a user's cart and
// validates quantities against stock before anything is persisted.
type Service struct {
	repo        cartRepo
	productRepo productRepo
}

type cartRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, cartrepo.Outcome, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetItem(ctx context.Context, itemID string) (*domain.CartItem, error)
	InsertItem(ctx context.Context, cartID, productID string, quantity int) (*domain.CartItem, error)
	SetItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// View is a rendered cart. Empty distinguishes "user has no cart" from a
// cart that exists with zero items.
type View struct {
	Cart       *domain.Cart `json:"cart,omitempty"`
	TotalCents int64        `json:"totalCents"`
	Empty      bool         `json:"empty"`
}

func (s *Service) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, cartrepo.Outcome, error) {
	if userID == "" {
		return nil, cartrepo.Found, domain.ErrUnauthorized
	}
	return s.repo.GetOrCreate(ctx, userID)
}

// AddItem puts quantity of a product into the user's cart, creating the
// cart and the item as needed. An existing item has its quantity raised by
// quantity instead of gaining a second row. When the resulting quantity
// exceeds stock nothing is persisted and the item keeps its prior value.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, cartrepo.Outcome, error) {
	if userID == "" {
		return nil, cartrepo.Found, domain.ErrUnauthorized
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, cartrepo.Found, errors.New("quantity must be positive")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, cartrepo.Found, err
	}

	cart, _, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, cartrepo.Found, err
	}

	for _, item := range cart.Items {
		if item.ProductID != productID {
			continue
		}
		newQty := item.Quantity + quantity
		if newQty > product.Stock {
			return nil, cartrepo.Found, domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   newQty,
				Available:   product.Stock,
			}
		}
		if err := s.repo.SetItemQuantity(ctx, item.ID, newQty); err != nil {
			return nil, cartrepo.Found, err
		}
		updated := item
		updated.Quantity = newQty
		updated.Product = product
		return &updated, cartrepo.Found, nil
	}

	if quantity > product.Stock {
		return nil, cartrepo.Created, domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}
	item, err := s.repo.InsertItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, cartrepo.Created, err
	}
	item.Product = product
	return item, cartrepo.Created, nil
}

// UpdateItemQuantity sets an item to an absolute quantity. The stored value
// is untouched when the request exceeds stock.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.CartItem, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if item.Product != nil && quantity > item.Product.Stock {
		return nil, domain.InsufficientStockError{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Requested:   quantity,
			Available:   item.Product.Stock,
		}
	}
	if err := s.repo.SetItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem deletes an item from the user's cart.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, item.ID)
}

// ViewCart returns the cart with a grand total over quantity x price.
func (s *Service) ViewCart(ctx context.Context, userID string) (*View, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &View{Empty: true}, nil
		}
		return nil, err
	}

	var total int64
	for _, item := range cart.Items {
		total += item.TotalCents()
	}
	return &View{Cart: cart, TotalCents: total}, nil
}

// ownedItem resolves an item and verifies it sits in the caller's cart.
func (s *Service) ownedItem(ctx context.Context, userID, itemID string) (*domain.CartItem, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, err
	}
	if item.CartID != cart.ID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}
