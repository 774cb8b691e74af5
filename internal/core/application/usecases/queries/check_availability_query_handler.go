package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// CheckAvailabilityQueryHandler answers advisory stock checks.
type CheckAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewCheckAvailabilityQueryHandler creates a handler for advisory stock
// checks.
func NewCheckAvailabilityQueryHandler(db *gorm.DB) CheckAvailabilityQueryHandler {
	return CheckAvailabilityQueryHandler{db: db}
}

// Handle executes the advisory check against the current ledger row.
func (h CheckAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckAvailabilityQuery,
) (CheckAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckAvailabilityQueryResponse{}, err
	}

	var available int
	err := h.db.WithContext(ctx).Raw(`
		SELECT available_quantity
		FROM inventory
		WHERE product_id = ?
	`, query.ProductID().Bytes()).Row().Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CheckAvailabilityQueryResponse{},
				errs.NewObjectNotFoundError("inventory", query.ProductID().String())
		}
		return CheckAvailabilityQueryResponse{}, err
	}

	return CheckAvailabilityQueryResponse{
		ProductID:         query.ProductID(),
		RequestedQuantity: query.Quantity(),
		AvailableQuantity: available,
		Sufficient:        available >= query.Quantity(),
	}, nil
}
