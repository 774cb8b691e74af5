// Package delivery provides the delivery lifecycle aggregate.
//
// A delivery is created one-to-one with a shipped order, either by the
// auto-creation hook fired when the order transitions to Shipped or by an
// explicit create call. It carries denormalized farmer and buyer ids copied
// from the order at creation, progresses through carrier-reported statuses,
// and on its terminal Delivered confirmation stamps the actual delivery
// date exactly once and marks the corresponding order delivered.
package delivery

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through a factory function.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

// DefaultEstimatedDeliveryDays is the default delivery estimate applied when
// no explicit estimated date is supplied at creation.
const DefaultEstimatedDeliveryDays = 3

// Delivery tracks the shipment for one order.
type Delivery struct {
	id                kernel.UUID
	orderID           kernel.UUID
	farmerID          kernel.UUID
	buyerID           kernel.UUID
	status            Status
	estimatedDelivery time.Time
	actualDelivery    *time.Time
	trackingLocation  string
	notes             string

	isConstructed bool
}

// NewDelivery creates a Pending delivery for an order. The farmer and buyer
// ids are denormalized copies taken from the order's product and buyer. A
// zero estimatedDelivery defaults to now plus DefaultEstimatedDeliveryDays.
func NewDelivery(
	id, orderID, farmerID, buyerID kernel.UUID,
	estimatedDelivery time.Time,
	trackingLocation, notes string,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		farmerID.Validate(),
		buyerID.Validate(),
	); err != nil {
		return nil, err
	}

	if estimatedDelivery.IsZero() {
		estimatedDelivery = time.Now().AddDate(0, 0, DefaultEstimatedDeliveryDays)
	}

	return &Delivery{
		id:                id,
		orderID:           orderID,
		farmerID:          farmerID,
		buyerID:           buyerID,
		status:            Pending,
		estimatedDelivery: estimatedDelivery,
		trackingLocation:  trackingLocation,
		notes:             notes,
		isConstructed:     true,
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence.
func RestoreDelivery(
	id, orderID, farmerID, buyerID kernel.UUID,
	status Status,
	estimatedDelivery time.Time,
	actualDelivery *time.Time,
	trackingLocation, notes string,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		farmerID.Validate(),
		buyerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:                id,
		orderID:           orderID,
		farmerID:          farmerID,
		buyerID:           buyerID,
		status:            status,
		estimatedDelivery: estimatedDelivery,
		actualDelivery:    actualDelivery,
		trackingLocation:  trackingLocation,
		notes:             notes,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Delivery instance was created through a factory function.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the identifier of the order this delivery fulfils.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// FarmerID returns the denormalized farmer identifier.
func (d *Delivery) FarmerID() kernel.UUID {
	return d.farmerID
}

// BuyerID returns the denormalized buyer identifier.
func (d *Delivery) BuyerID() kernel.UUID {
	return d.buyerID
}

// Status returns the delivery's current status.
func (d *Delivery) Status() Status {
	return d.status
}

// EstimatedDelivery returns the estimated delivery date.
func (d *Delivery) EstimatedDelivery() time.Time {
	return d.estimatedDelivery
}

// ActualDelivery returns the actual delivery date, or nil while the
// shipment has not been confirmed delivered.
func (d *Delivery) ActualDelivery() *time.Time {
	return d.actualDelivery
}

// TrackingLocation returns the last reported tracking location.
func (d *Delivery) TrackingLocation() string {
	return d.trackingLocation
}

// Notes returns the free-text delivery notes.
func (d *Delivery) Notes() string {
	return d.notes
}

// UpdateStatus applies a carrier status update. Tracking fields are
// last-write-wins but empty values preserve the prior ones.
//
// When the new status is Delivered and the actual delivery date has not been
// stamped yet, it is set to now and confirmedDelivered reports true; the
// caller must then mark the corresponding order delivered within the same
// transaction. Repeated Delivered updates leave the date at its first-set
// value and report false.
func (d *Delivery) UpdateStatus(
	newStatus Status, trackingLocation, notes string, now time.Time,
) (confirmedDelivered bool, err error) {
	if err := newStatus.Validate(); err != nil {
		return false, err
	}

	d.status = newStatus

	if trackingLocation != "" {
		d.trackingLocation = trackingLocation
	}
	if notes != "" {
		d.notes = notes
	}

	if newStatus.IsDelivered() && d.actualDelivery == nil {
		stamped := now
		d.actualDelivery = &stamped
		return true, nil
	}

	return false, nil
}
