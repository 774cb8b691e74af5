// Package inventoryrepo provides data transfer objects and mapping functions
// for inventory persistence. This package implements the repository pattern
// for the inventory ledger, handling the conversion between domain entities
// and database representations.
package inventoryrepo

import (
	"time"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InventoryDTO represents the database structure for persisting the ledger.
// The unique index on product_id enforces the one-row-per-product invariant
// at the storage level.
type InventoryDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	AvailableQuantity int
	ReservedQuantity  int
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for inventory records.
func (InventoryDTO) TableName() string {
	return "inventory"
}

// fromDomain converts an inventory domain aggregate to its database representation.
func fromDomain(aggregate *inventory.Inventory) InventoryDTO {
	return InventoryDTO{
		ID:                aggregate.ID().Bytes(),
		ProductID:         aggregate.ProductID().Bytes(),
		AvailableQuantity: aggregate.Available(),
		ReservedQuantity:  aggregate.Reserved(),
	}
}

// toDomain converts a database DTO to an inventory domain aggregate.
func toDomain(dto InventoryDTO) (*inventory.Inventory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreInventory(id, productID, dto.AvailableQuantity, dto.ReservedQuantity)
}
