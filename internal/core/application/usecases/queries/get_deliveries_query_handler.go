package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler retrieves role-scoped delivery listings.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery queries.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle executes the delivery query. A by-order query that matches no row
// visible to the actor fails with ObjectNotFound.
func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			d.id,
			d.order_id,
			d.status,
			d.estimated_delivery_date,
			d.actual_delivery_date,
			d.tracking_location,
			d.delivery_notes
		FROM deliveries d
	`

	where, args := deliveryScope(query)
	db := h.db.WithContext(ctx)

	sqlRows, err := db.Raw(baseQuery+where+` ORDER BY d.created_at DESC`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer sqlRows.Close()

	deliveries := make([]GetDeliveriesQueryResponse, 0)
	for sqlRows.Next() {
		var resp GetDeliveriesQueryResponse
		var id, orderID uuid.UUID

		err = sqlRows.Scan(
			&id,
			&orderID,
			&resp.Status,
			&resp.EstimatedDeliveryDate,
			&resp.ActualDeliveryDate,
			&resp.TrackingLocation,
			&resp.DeliveryNotes,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, resp)
	}

	if err = sqlRows.Err(); err != nil {
		return nil, err
	}

	if query.ByOrder() && len(deliveries) == 0 {
		return nil, errs.NewObjectNotFoundError("delivery", query.OrderID().String())
	}

	return deliveries, nil
}

// deliveryScope builds the WHERE clause narrowing the listing to what the
// actor may see.
func deliveryScope(query GetDeliveriesQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	switch query.ActorRole() {
	case user.Buyer:
		clauses = append(clauses, "d.buyer_id = ?")
		args = append(args, query.ActorID().Bytes())
	case user.Farmer:
		clauses = append(clauses, "d.farmer_id = ?")
		args = append(args, query.ActorID().Bytes())
	default: // admins see everything
	}

	if query.ByOrder() {
		clauses = append(clauses, "d.order_id = ?")
		args = append(args, query.OrderID().Bytes())
	}

	if len(clauses) == 0 {
		return "", nil
	}

	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}
