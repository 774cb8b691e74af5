// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases, scoped to the
// role of the requesting user.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/guard"
)

// ErrGetOrdersQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the orders visible to the requesting user.
// Buyers see their own orders, farmers see orders placed on their products,
// admins see everything.
type GetOrdersQuery struct {
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a role-scoped order listing query.
func NewGetOrdersQuery(actorID kernel.UUID, actorRole user.Role) (GetOrdersQuery, error) {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		actorID:   actorID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// ActorID returns the requesting user.
func (q GetOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ActorRole returns the requesting user's role.
func (q GetOrdersQuery) ActorRole() user.Role {
	return q.actorRole
}

// GetOrdersQueryResponse represents one order in the read model, with the
// product, buyer, and farmer names denormalized for display. Names are empty
// when the referenced user is not known to the local store.
type GetOrdersQueryResponse struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	BuyerID     kernel.UUID
	BuyerName   string
	FarmerName  string
	Quantity    int
	TotalPrice  float64
	Status      string
	CreatedAt   time.Time
}
