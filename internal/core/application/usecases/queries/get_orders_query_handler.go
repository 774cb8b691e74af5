package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves role-scoped order listings.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve the orders visible to the actor.
// Results are sorted newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			o.id,
			o.product_id,
			p.name,
			o.buyer_id,
			COALESCE(b.name, ''),
			COALESCE(f.name, ''),
			o.quantity,
			o.total_price,
			o.status,
			o.created_at
		FROM orders o
		JOIN products p ON p.id = o.product_id
		LEFT JOIN users b ON b.id = o.buyer_id
		LEFT JOIN users f ON f.id = p.farmer_id
	`

	db := h.db.WithContext(ctx)
	var rows *gorm.DB
	switch query.ActorRole() {
	case user.Buyer:
		rows = db.Raw(baseQuery+` WHERE o.buyer_id = ? ORDER BY o.created_at DESC`,
			query.ActorID().Bytes())
	case user.Farmer:
		rows = db.Raw(baseQuery+` WHERE p.farmer_id = ? ORDER BY o.created_at DESC`,
			query.ActorID().Bytes())
	default:
		rows = db.Raw(baseQuery + ` ORDER BY o.created_at DESC`)
	}

	sqlRows, err := rows.Rows()
	if err != nil {
		return nil, err
	}
	defer sqlRows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for sqlRows.Next() {
		var resp GetOrdersQueryResponse
		var id, productID, buyerID uuid.UUID
		var status int

		err = sqlRows.Scan(
			&id,
			&productID,
			&resp.ProductName,
			&buyerID,
			&resp.BuyerName,
			&resp.FarmerName,
			&resp.Quantity,
			&resp.TotalPrice,
			&status,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if resp.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status).String()

		orders = append(orders, resp)
	}

	if err = sqlRows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
