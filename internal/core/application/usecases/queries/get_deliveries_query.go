package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

// ErrGetDeliveriesQueryIsNotConstructed is returned when the query was not
// created via a constructor.
var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery or NewGetDeliveryByOrderQuery constructor",
)

// GetDeliveriesQuery retrieves deliveries visible to the requesting user, or
// the single delivery attached to one order. Buyers see deliveries headed to
// them, farmers see deliveries they ship, admins see everything.
type GetDeliveriesQuery struct {
	actorID   kernel.UUID
	actorRole user.Role
	orderID   kernel.UUID
	byOrder   bool

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates a role-scoped delivery listing query.
func NewGetDeliveriesQuery(actorID kernel.UUID, actorRole user.Role) (GetDeliveriesQuery, error) {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return GetDeliveriesQuery{}, err
	}

	return GetDeliveriesQuery{
		actorID:   actorID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewGetDeliveryByOrderQuery creates a query for the delivery attached to
// one order, scoped to the requesting user.
func NewGetDeliveryByOrderQuery(
	actorID kernel.UUID, actorRole user.Role, orderID kernel.UUID,
) (GetDeliveriesQuery, error) {
	if err := errors.Join(actorID.Validate(), actorRole.Validate(), orderID.Validate()); err != nil {
		return GetDeliveriesQuery{}, err
	}

	return GetDeliveriesQuery{
		actorID:   actorID,
		actorRole: actorRole,
		orderID:   orderID,
		byOrder:   true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// ActorID returns the requesting user.
func (q GetDeliveriesQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ActorRole returns the requesting user's role.
func (q GetDeliveriesQuery) ActorRole() user.Role {
	return q.actorRole
}

// ByOrder reports whether the query targets a single order's delivery.
func (q GetDeliveriesQuery) ByOrder() bool {
	return q.byOrder
}

// OrderID returns the targeted order. Only meaningful when ByOrder.
func (q GetDeliveriesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetDeliveriesQueryResponse represents one delivery in the read model.
type GetDeliveriesQueryResponse struct {
	ID                    kernel.UUID
	OrderID               kernel.UUID
	Status                string
	EstimatedDeliveryDate time.Time
	ActualDeliveryDate    *time.Time
	TrackingLocation      string
	DeliveryNotes         string
}
