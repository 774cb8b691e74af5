package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrUpdateInventoryCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrUpdateInventoryCommandIsNotConstructed = errors.New(
	"UpdateInventoryCommand must be created via NewUpdateInventoryCommand constructor",
)

// UpdateInventoryCommand represents an administrative override of a product's
// available stock. Only an admin or the farmer who owns the product may apply
// it.
type UpdateInventoryCommand struct { //nolint:recvcheck //using for validation
	actorID   kernel.UUID
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewUpdateInventoryCommand creates a command to overwrite a product's
// available stock with an absolute quantity.
func NewUpdateInventoryCommand(actorID, productID kernel.UUID, quantity int) (UpdateInventoryCommand, error) {
	cmd := UpdateInventoryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorID(actorID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateInventoryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateInventoryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateInventoryCommandIsNotConstructed)
}

// ActorID returns the user applying the override.
func (c UpdateInventoryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ProductID returns the product whose stock is being overwritten.
func (c UpdateInventoryCommand) ProductID() kernel.UUID {
	return c.productID
}

// Quantity returns the new absolute available quantity.
func (c UpdateInventoryCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateInventoryCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateInventoryCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *UpdateInventoryCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is negative", quantity))
	}

	c.quantity = quantity
	return nil
}
