package unit

import (
	"context"
)

// Repository defines the interface for unit catalog access.
type Repository interface {
	// List retrieves all units in catalog order.
	List(ctx context.Context) ([]Unit, error)

	// Exists reports whether a unit code is in the catalog.
	Exists(ctx context.Context, code string) (bool, error)
}
