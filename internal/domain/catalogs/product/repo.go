package product

import (
	"context"
)

// Repository defines the interface for product catalog access.
type Repository interface {
	// List retrieves all products in catalog order.
	List(ctx context.Context) ([]Product, error)

	// Exists reports whether a product ID is in the catalog.
	Exists(ctx context.Context, productID string) (bool, error)
}
