package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	Pending ──> Shipped ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no transition out of them is
// permitted. Cancellation is additionally forbidden once the order has
// shipped (shipped goods cannot be cancelled through the cancel path).
type Status int

const (
	// UnknownStatus represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	UnknownStatus Status = iota

	// Pending is the initial status when an order is placed.
	Pending

	// Shipped indicates the farmer has handed the order to delivery.
	Shipped

	// Delivered indicates the order reached the buyer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled and its stock refunded. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		Shipped:       "Shipped",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Shipped:   "Shipped",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// StatusFromString parses a status received from an external source.
// Accepts the upper-case wire form (PENDING, SHIPPED, DELIVERED, CANCELLED)
// as well as the canonical String() form.
func StatusFromString(s string) (Status, error) {
	switch s {
	case "PENDING", "Pending":
		return Pending, nil
	case "SHIPPED", "Shipped":
		return Shipped, nil
	case "DELIVERED", "Delivered":
		return Delivered, nil
	case "CANCELLED", "Cancelled":
		return Cancelled, nil
	default:
		return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%q is not a valid order status", s))
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Pending, Shipped, Delivered, and Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Transition validates a status update and returns the new status.
// Any transition out of a terminal state fails with InvalidTransition.
func (s Status) Transition(newStatus Status) (Status, error) {
	if err := newStatus.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, errs.NewInvalidTransitionError("order", s.String(), newStatus.String())
	}

	return newStatus, nil
}

// Cancel validates cancellation and returns Cancelled.
// Only Pending orders can be cancelled through this path; Shipped,
// Delivered, and Cancelled all fail with InvalidTransition.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("order", s.String(), Cancelled.String())
	}

	return Cancelled, nil
}
