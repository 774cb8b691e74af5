// Package inventory provides the inventory ledger aggregate: the
// authoritative per-product stock count and its mutation operations.
//
// Exactly one Inventory row exists per product once initialized. The
// aggregate enforces that the available quantity never goes negative;
// serialization of concurrent read-validate-write sequences is the
// repository's job (exclusive row lock), not the aggregate's.
package inventory

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrInventoryIsNotConstructed is returned when an Inventory instance was not
// created through a factory function.
var ErrInventoryIsNotConstructed = errors.New("Inventory must be created via NewInventory or RestoreInventory")

// Inventory is the ledger row for one product.
//
// Invariants:
//   - available >= 0 at all times
//   - reserved >= 0; tracked but never drawn down by any current flow
//     (scaffolding for a future reservation hold feature)
type Inventory struct {
	id        kernel.UUID
	productID kernel.UUID
	available int
	reserved  int

	isConstructed bool
}

// NewInventory creates the ledger row for a product with an initial
// available quantity and zero reserved stock.
func NewInventory(id, productID kernel.UUID, initialQuantity int) (*Inventory, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}

	if initialQuantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"initialQuantity", fmt.Errorf("%d is negative", initialQuantity))
	}

	return &Inventory{
		id:            id,
		productID:     productID,
		available:     initialQuantity,
		reserved:      0,
		isConstructed: true,
	}, nil
}

// RestoreInventory reconstructs a ledger row from persistence.
func RestoreInventory(id, productID kernel.UUID, available, reserved int) (*Inventory, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}

	if available < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"available", fmt.Errorf("%d is negative", available))
	}
	if reserved < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"reserved", fmt.Errorf("%d is negative", reserved))
	}

	return &Inventory{
		id:            id,
		productID:     productID,
		available:     available,
		reserved:      reserved,
		isConstructed: true,
	}, nil
}

// Validate ensures the Inventory instance was created through a factory function.
func (i *Inventory) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInventoryIsNotConstructed
	}
	return nil
}

// ID returns the ledger row's unique identifier.
func (i *Inventory) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identifier of the product this row tracks.
func (i *Inventory) ProductID() kernel.UUID {
	return i.productID
}

// Available returns the quantity currently available for sale.
func (i *Inventory) Available() int {
	return i.available
}

// Reserved returns the quantity held in reservations.
// No current flow increments or decrements this value.
func (i *Inventory) Reserved() int {
	return i.reserved
}

// HasAvailable reports whether the requested quantity can be satisfied.
// This is an advisory check: it may observe a stale value under concurrent
// writers. The authoritative guard is Decrease under the row lock.
func (i *Inventory) HasAvailable(requested int) bool {
	return i.available >= requested
}

// Decrease removes quantity from the available stock.
// Fails with InsufficientStock if the current available quantity is lower
// than the requested one. Callers must hold the exclusive row lock across
// the read-validate-write sequence for the check to be authoritative.
func (i *Inventory) Decrease(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	if i.available < quantity {
		return errs.NewInsufficientStockError(i.productID.String(), i.available, quantity)
	}

	i.available -= quantity
	return nil
}

// Increase adds quantity back to the available stock.
// Unconditional: used on cancellation refunds, which the order state machine
// pairs 1:1 with prior decreases.
func (i *Inventory) Increase(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	i.available += quantity
	return nil
}

// SetAvailable overwrites the available quantity.
// Used by administrative overrides and catalog resyncs.
func (i *Inventory) SetAvailable(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is negative", quantity))
	}

	i.available = quantity
	return nil
}
