// Package product provides the product reference entity.
// Products are owned by the external catalog; the core reads their price,
// farmer owner, and catalog quantity, and mutates only the legacy quantity
// mirror kept in sync with the inventory ledger for backward-compatible reads.
package product

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through a factory function.
var ErrProductIsNotConstructed = errors.New("Product must be created via RestoreProduct")

// Product references a catalog product. The core treats everything except
// the legacy quantity mirror as read-only.
type Product struct {
	id       kernel.UUID
	name     string
	price    float64
	quantity int
	farmerID kernel.UUID

	isConstructed bool
}

// RestoreProduct reconstructs a product from the catalog store.
func RestoreProduct(id kernel.UUID, name string, price float64, quantity int, farmerID kernel.UUID) (*Product, error) {
	if err := errors.Join(
		id.Validate(),
		farmerID.Validate(),
	); err != nil {
		return nil, err
	}

	if price < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%v is negative", price))
	}
	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is negative", quantity))
	}

	return &Product{
		id:            id,
		name:          name,
		price:         price,
		quantity:      quantity,
		farmerID:      farmerID,
		isConstructed: true,
	}, nil
}

// Validate ensures the Product instance was created through RestoreProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the product's unit price.
func (p *Product) Price() float64 {
	return p.price
}

// Quantity returns the legacy catalog quantity.
// This field duplicates the inventory ledger's available quantity and is
// kept in sync for backward-compatible reads.
func (p *Product) Quantity() int {
	return p.quantity
}

// FarmerID returns the identifier of the farmer owning the product.
func (p *Product) FarmerID() kernel.UUID {
	return p.farmerID
}

// MirrorAvailability overwrites the legacy quantity with the ledger's
// available quantity. Called whenever the ledger changes so that old
// catalog readers keep seeing a consistent value.
func (p *Product) MirrorAvailability(available int) error {
	if available < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"available", fmt.Errorf("%d is negative", available))
	}
	p.quantity = available
	return nil
}
