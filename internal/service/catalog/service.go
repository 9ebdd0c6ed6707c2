package catalog

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
)

// Service exposes the read side of the catalog: categories, product
// listings and substring search.
type Service struct {
	categories categoryrepo.Repository
	products   productrepo.Repository
}

func New(categories categoryrepo.Repository, products productrepo.Repository) *Service {
	return &Service{categories: categories, products: products}
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// CategoryDetail returns a category together with its products.
func (s *Service) CategoryDetail(ctx context.Context, id string) (*domain.Category, []domain.Product, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.products.ListByCategory(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return cat, products, nil
}

// ListProducts lists all products, or only those whose name or description
// contains the query, matched case-insensitively.
func (s *Service) ListProducts(ctx context.Context, query string) ([]domain.Product, error) {
	return s.products.List(ctx, strings.TrimSpace(query))
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Restock raises a product's stock; the storefront itself never calls this,
// it is the administrator path.
func (s *Service) Restock(ctx context.Context, id string, amount int) (*domain.Product, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	return s.products.Restock(ctx, id, amount)
}
