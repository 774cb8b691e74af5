package ports

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Each order has at most one delivery.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate.
	// Fails with errs.ErrObjectAlreadyExists when the order already has one.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// ExistsByOrderID reports whether an order already has a delivery.
	ExistsByOrderID(ctx context.Context, orderID kernel.UUID) (bool, error)
}
