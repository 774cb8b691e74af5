package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrInitializeInventoryCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrInitializeInventoryCommandIsNotConstructed = errors.New(
	"InitializeInventoryCommand must be created via NewInitializeInventoryCommand constructor",
)

// InitializeInventoryCommand represents a request to create the ledger row
// for a product. The operation is idempotent: initializing a product that
// already has a row is a no-op.
type InitializeInventoryCommand struct { //nolint:recvcheck //using for validation
	productID       kernel.UUID
	initialQuantity int

	guard guard.ConstructorGuard
}

// NewInitializeInventoryCommand creates a command to initialize a product's
// ledger row. The initial quantity must not be negative; zero is valid for
// products listed before stock arrives.
func NewInitializeInventoryCommand(productID kernel.UUID, initialQuantity int) (InitializeInventoryCommand, error) {
	cmd := InitializeInventoryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setInitialQuantity(initialQuantity),
	); err != nil {
		return InitializeInventoryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitializeInventoryCommand) Validate() error {
	return c.guard.Validate(ErrInitializeInventoryCommandIsNotConstructed)
}

// ProductID returns the product whose ledger row is being created.
func (c InitializeInventoryCommand) ProductID() kernel.UUID {
	return c.productID
}

// InitialQuantity returns the opening available stock.
func (c InitializeInventoryCommand) InitialQuantity() int {
	return c.initialQuantity
}

func (c *InitializeInventoryCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *InitializeInventoryCommand) setInitialQuantity(initialQuantity int) error {
	if initialQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"initialQuantity", fmt.Errorf("%d is negative", initialQuantity))
	}

	c.initialQuantity = initialQuantity
	return nil
}
