package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for the order lifecycle.
//
// Invariants:
//   - quantity > 0
//   - totalPrice = unit price at creation × quantity, frozen thereafter
//   - status transitions follow the state machine in Status
//   - once Delivered or Cancelled, the order is immutable
type Order struct {
	id         kernel.UUID
	productID  kernel.UUID
	buyerID    kernel.UUID
	quantity   int
	totalPrice float64
	status     Status

	isConstructed bool
}

// NewOrder creates a Pending order, computing the frozen total price from
// the product's unit price at creation time.
func NewOrder(id, productID, buyerID kernel.UUID, quantity int, unitPrice float64) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		buyerID.Validate(),
	); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice", fmt.Errorf("%v is negative", unitPrice))
	}

	return &Order{
		id:            id,
		productID:     productID,
		buyerID:       buyerID,
		quantity:      quantity,
		totalPrice:    unitPrice * float64(quantity),
		status:        Pending,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence, including its frozen
// total price and current status.
func RestoreOrder(id, productID, buyerID kernel.UUID, quantity int, totalPrice float64, status Status) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		buyerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	return &Order{
		id:            id,
		productID:     productID,
		buyerID:       buyerID,
		quantity:      quantity,
		totalPrice:    totalPrice,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ProductID returns the identifier of the ordered product.
func (o *Order) ProductID() kernel.UUID {
	return o.productID
}

// BuyerID returns the identifier of the buyer who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// Quantity returns the ordered quantity.
func (o *Order) Quantity() int {
	return o.quantity
}

// TotalPrice returns the total price frozen at creation.
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ChangeStatus moves the order to a new status through the state machine.
// Fails with InvalidTransition when the current status is terminal.
func (o *Order) ChangeStatus(newStatus Status) error {
	next, err := o.status.Transition(newStatus)
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// Cancel cancels the order. Only permitted while Pending: shipped goods
// cannot be cancelled through this path. The caller is responsible for
// refunding the stock within the same transaction.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// MarkDelivered moves the order to Delivered. This is the capability the
// delivery lifecycle invokes when a delivery confirmation arrives; it goes
// through the same state machine as any other transition.
func (o *Order) MarkDelivered() error {
	return o.ChangeStatus(Delivered)
}
