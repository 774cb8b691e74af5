package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrGetInventoryQueryIsNotConstructed is returned when the query was not
// created via a constructor.
var ErrGetInventoryQueryIsNotConstructed = errors.New(
	"GetInventoryQuery must be created via NewGetInventoryQuery, NewGetAllInventoryQuery or NewGetFarmerInventoryQuery constructor",
)

// GetInventoryQuery retrieves ledger rows: one product's row, every row for
// one farmer's products, or the whole ledger.
type GetInventoryQuery struct {
	productID kernel.UUID
	farmerID  kernel.UUID
	byProduct bool
	byFarmer  bool

	guard guard.ConstructorGuard
}

// NewGetInventoryQuery creates a query for one product's ledger row.
func NewGetInventoryQuery(productID kernel.UUID) (GetInventoryQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetInventoryQuery{}, err
	}

	return GetInventoryQuery{
		productID: productID,
		byProduct: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewGetFarmerInventoryQuery creates a query for the ledger rows of every
// product owned by a farmer.
func NewGetFarmerInventoryQuery(farmerID kernel.UUID) (GetInventoryQuery, error) {
	if err := farmerID.Validate(); err != nil {
		return GetInventoryQuery{}, err
	}

	return GetInventoryQuery{
		farmerID: farmerID,
		byFarmer: true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewGetAllInventoryQuery creates a query for the whole ledger.
func NewGetAllInventoryQuery() GetInventoryQuery {
	return GetInventoryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through a constructor.
func (q GetInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryQueryIsNotConstructed)
}

// ByProduct reports whether the query targets a single product.
func (q GetInventoryQuery) ByProduct() bool {
	return q.byProduct
}

// ByFarmer reports whether the query targets one farmer's products.
func (q GetInventoryQuery) ByFarmer() bool {
	return q.byFarmer
}

// ProductID returns the targeted product. Only meaningful when ByProduct.
func (q GetInventoryQuery) ProductID() kernel.UUID {
	return q.productID
}

// FarmerID returns the targeted farmer. Only meaningful when ByFarmer.
func (q GetInventoryQuery) FarmerID() kernel.UUID {
	return q.farmerID
}

// GetInventoryQueryResponse represents one ledger row in the read model.
type GetInventoryQueryResponse struct {
	ProductID         kernel.UUID
	ProductName       string
	AvailableQuantity int
	ReservedQuantity  int
	UpdatedAt         time.Time
}
