package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrCreateDeliveryCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to create the delivery record
// for a shipped order. The operation is idempotent: an order that already
// has a delivery is a no-op.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID        kernel.UUID
	orderID           kernel.UUID
	estimatedDelivery time.Time
	trackingLocation  string
	notes             string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to create a delivery for an
// order. A zero estimated date and empty tracking fields fall back to the
// standard warehouse defaults.
func NewCreateDeliveryCommand(
	deliveryID, orderID kernel.UUID,
	estimatedDelivery time.Time,
	trackingLocation, notes string,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		estimatedDelivery: estimatedDelivery,
		trackingLocation:  trackingLocation,
		notes:             notes,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setOrderID(orderID),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the unique identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// OrderID returns the order the delivery fulfils.
func (c CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EstimatedDelivery returns the requested estimated delivery date.
// Zero means use the default estimate.
func (c CreateDeliveryCommand) EstimatedDelivery() time.Time {
	return c.estimatedDelivery
}

// TrackingLocation returns the initial tracking location.
// Empty means use the default warehouse location.
func (c CreateDeliveryCommand) TrackingLocation() string {
	return c.trackingLocation
}

// Notes returns the initial delivery notes.
func (c CreateDeliveryCommand) Notes() string {
	return c.notes
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
