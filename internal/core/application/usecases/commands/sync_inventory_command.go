package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrSyncInventoryCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrSyncInventoryCommandIsNotConstructed = errors.New(
	"SyncInventoryCommand must be created via NewSyncInventoryCommand or NewSyncAllInventoryCommand constructor",
)

// SyncInventoryCommand represents a request to re-mirror the ledger's
// available count into the catalog quantity column, for one product or for
// the whole catalog. The ledger is authoritative; the catalog column exists
// for consumers that still read it.
type SyncInventoryCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	all       bool

	guard guard.ConstructorGuard
}

// NewSyncInventoryCommand creates a command to resync a single product.
func NewSyncInventoryCommand(productID kernel.UUID) (SyncInventoryCommand, error) {
	cmd := SyncInventoryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setProductID(productID); err != nil {
		return SyncInventoryCommand{}, err
	}

	return cmd, nil
}

// NewSyncAllInventoryCommand creates a command to resync the whole catalog.
func NewSyncAllInventoryCommand() SyncInventoryCommand {
	return SyncInventoryCommand{
		all:   true,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through a constructor.
func (c SyncInventoryCommand) Validate() error {
	return c.guard.Validate(ErrSyncInventoryCommandIsNotConstructed)
}

// All reports whether the whole catalog should be resynced.
func (c SyncInventoryCommand) All() bool {
	return c.all
}

// ProductID returns the product to resync. Only meaningful when All is false.
func (c SyncInventoryCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c *SyncInventoryCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}
