package product

import (
	"context"
	"fmt"
)

// Service provides read access to the product catalog.
type Service struct {
	repo Repository
}

// NewService creates a product catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all catalog products.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Exists reports whether productID is a valid catalog token.
func (s *Service) Exists(ctx context.Context, productID string) (bool, error) {
	ok, err := s.repo.Exists(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return ok, nil
}
