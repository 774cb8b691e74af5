// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. This package implements the repository pattern
// for the delivery aggregate, handling the conversion between domain entities
// and database representations.
package deliveryrepo

import (
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. The unique index on order_id enforces the one-delivery-per-order
// invariant at the storage level; farmer and buyer columns are denormalized
// copies for the role-scoped listing queries.
type DeliveryDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID               uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	FarmerID              uuid.UUID `gorm:"type:uuid;index"`
	BuyerID               uuid.UUID `gorm:"type:uuid;index"`
	Status                string
	EstimatedDeliveryDate time.Time
	ActualDeliveryDate    *time.Time
	TrackingLocation      string
	DeliveryNotes         string
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:                    aggregate.ID().Bytes(),
		OrderID:               aggregate.OrderID().Bytes(),
		FarmerID:              aggregate.FarmerID().Bytes(),
		BuyerID:               aggregate.BuyerID().Bytes(),
		Status:                aggregate.Status().String(),
		EstimatedDeliveryDate: aggregate.EstimatedDelivery(),
		ActualDeliveryDate:    aggregate.ActualDelivery(),
		TrackingLocation:      aggregate.TrackingLocation(),
		DeliveryNotes:         aggregate.Notes(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id, orderID, farmerID, buyerID,
		delivery.Status(dto.Status),
		dto.EstimatedDeliveryDate,
		dto.ActualDeliveryDate,
		dto.TrackingLocation,
		dto.DeliveryNotes,
	)
}
