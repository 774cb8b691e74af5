package ports

import (
	"context"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for inventory records.
// Inventory is keyed by product: each product has at most one record, and all
// stock mutations must go through GetByProductIDForUpdate so that concurrent
// writers serialize on the row.
type InventoryRepository interface {
	// Add persists a new inventory record.
	// Fails with errs.ErrObjectAlreadyExists when the product already has one.
	Add(ctx context.Context, aggregate *inventory.Inventory) error

	// Update persists changes to an existing inventory record.
	Update(ctx context.Context, aggregate *inventory.Inventory) error

	// GetByProductID retrieves the inventory record for a product without
	// locking. Suitable for advisory reads only.
	GetByProductID(ctx context.Context, productID kernel.UUID) (*inventory.Inventory, error)

	// GetByProductIDForUpdate retrieves the inventory record for a product
	// under an exclusive row lock. Must be called inside a transaction; the
	// lock is held until the transaction commits or rolls back.
	GetByProductIDForUpdate(ctx context.Context, productID kernel.UUID) (*inventory.Inventory, error)

	// ExistsByProductID reports whether a product already has an inventory
	// record.
	ExistsByProductID(ctx context.Context, productID kernel.UUID) (bool, error)
}
