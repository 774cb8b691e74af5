package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
// The catalog quantity column is a legacy mirror of the inventory ledger's
// available count and is written through Update by the application layer.
type ProductRepository interface {
	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetAll retrieves every product in the catalog.
	GetAll(ctx context.Context) ([]*product.Product, error)

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error
}
