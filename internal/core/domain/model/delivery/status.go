package delivery

import (
	"marketplace/internal/pkg/errs"
)

// Status represents the state of a delivery.
//
// Pending and InTransit are the usual progression and Delivered is the
// terminal confirmation, but carriers report intermediate states freely, so
// any non-empty value is accepted. Delivered is the only status with side
// effects: it stamps the actual delivery date and marks the order delivered.
type Status string

const (
	// Pending is the initial status when a delivery is created.
	Pending Status = "PENDING"

	// InTransit indicates the shipment is on its way to the buyer.
	InTransit Status = "IN_TRANSIT"

	// Delivered indicates the shipment reached the buyer.
	Delivered Status = "DELIVERED"
)

// StatusFromString parses a delivery status received from an external source.
func StatusFromString(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status carries a value.
// Free-form carrier statuses are permitted; only emptiness is rejected.
func (s Status) Validate() error {
	if s == "" {
		return errs.NewValueIsRequiredError("deliveryStatus")
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsDelivered reports whether the status is the terminal confirmation.
func (s Status) IsDelivered() bool {
	return s == Delivered
}
