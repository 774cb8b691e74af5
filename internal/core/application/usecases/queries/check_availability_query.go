package queries

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrCheckAvailabilityQueryIsNotConstructed is returned when the query was
// not created via its constructor.
var ErrCheckAvailabilityQueryIsNotConstructed = errors.New(
	"CheckAvailabilityQuery must be created via NewCheckAvailabilityQuery constructor",
)

// CheckAvailabilityQuery asks whether a product currently has enough stock
// for a requested quantity. The answer is advisory: it takes no lock, and
// only order placement itself guarantees the stock is still there.
type CheckAvailabilityQuery struct {
	productID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewCheckAvailabilityQuery creates an advisory stock check.
func NewCheckAvailabilityQuery(productID kernel.UUID, quantity int) (CheckAvailabilityQuery, error) {
	if err := productID.Validate(); err != nil {
		return CheckAvailabilityQuery{}, err
	}
	if quantity <= 0 {
		return CheckAvailabilityQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	return CheckAvailabilityQuery{
		productID: productID,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAvailabilityQueryIsNotConstructed)
}

// ProductID returns the product being checked.
func (q CheckAvailabilityQuery) ProductID() kernel.UUID {
	return q.productID
}

// Quantity returns the requested quantity.
func (q CheckAvailabilityQuery) Quantity() int {
	return q.quantity
}

// CheckAvailabilityQueryResponse reports the advisory stock answer.
type CheckAvailabilityQueryResponse struct {
	ProductID         kernel.UUID
	RequestedQuantity int
	AvailableQuantity int
	Sufficient        bool
}
