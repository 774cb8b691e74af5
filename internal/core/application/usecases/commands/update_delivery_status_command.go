package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrUpdateDeliveryStatusCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents a carrier tracking update for the
// delivery of an order. Only the farmer the delivery belongs to, or an
// admin, may apply it. Empty tracking fields leave the stored values
// untouched.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	actorID          kernel.UUID
	orderID          kernel.UUID
	newStatus        delivery.Status
	trackingLocation string
	notes            string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to apply a tracking
// update to the delivery of the given order.
func NewUpdateDeliveryStatusCommand(
	actorID, orderID kernel.UUID,
	newStatus delivery.Status,
	trackingLocation, notes string,
) (UpdateDeliveryStatusCommand, error) {
	cmd := UpdateDeliveryStatusCommand{
		trackingLocation: trackingLocation,
		notes:            notes,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorID(actorID),
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// ActorID returns the user applying the update.
func (c UpdateDeliveryStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// OrderID returns the order whose delivery is being updated.
func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the reported carrier status.
func (c UpdateDeliveryStatusCommand) NewStatus() delivery.Status {
	return c.newStatus
}

// TrackingLocation returns the reported location, empty to keep the stored
// value.
func (c UpdateDeliveryStatusCommand) TrackingLocation() string {
	return c.trackingLocation
}

// Notes returns the reported notes, empty to keep the stored value.
func (c UpdateDeliveryStatusCommand) Notes() string {
	return c.notes
}

func (c *UpdateDeliveryStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setNewStatus(newStatus delivery.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	c.newStatus = newStatus
	return nil
}
