package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetInventoryQueryHandler retrieves ledger read models.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetInventoryQueryHandler struct {
	db *gorm.DB
}

// NewGetInventoryQueryHandler creates a handler for ledger queries.
func NewGetInventoryQueryHandler(db *gorm.DB) GetInventoryQueryHandler {
	return GetInventoryQueryHandler{db: db}
}

// Handle executes the ledger query. A single-product query that matches no
// row fails with ObjectNotFound; list queries return empty slices.
func (h GetInventoryQueryHandler) Handle(
	ctx context.Context,
	query GetInventoryQuery,
) ([]GetInventoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			i.product_id,
			p.name,
			i.available_quantity,
			i.reserved_quantity,
			i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
	`

	db := h.db.WithContext(ctx)
	var rows *gorm.DB
	switch {
	case query.ByProduct():
		rows = db.Raw(baseQuery+` WHERE i.product_id = ?`, query.ProductID().Bytes())
	case query.ByFarmer():
		rows = db.Raw(baseQuery+` WHERE p.farmer_id = ? ORDER BY p.name`, query.FarmerID().Bytes())
	default:
		rows = db.Raw(baseQuery + ` ORDER BY p.name`)
	}

	sqlRows, err := rows.Rows()
	if err != nil {
		return nil, err
	}
	defer sqlRows.Close()

	records := make([]GetInventoryQueryResponse, 0)
	for sqlRows.Next() {
		var resp GetInventoryQueryResponse
		var productID uuid.UUID

		err = sqlRows.Scan(
			&productID,
			&resp.ProductName,
			&resp.AvailableQuantity,
			&resp.ReservedQuantity,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}

		records = append(records, resp)
	}

	if err = sqlRows.Err(); err != nil {
		return nil, err
	}

	if query.ByProduct() && len(records) == 0 {
		return nil, errs.NewObjectNotFoundError("inventory", query.ProductID().String())
	}

	return records, nil
}
