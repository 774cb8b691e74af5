package inventoryrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new inventory record to the database.
// The unique index on product_id turns a concurrent double-initialization
// into a duplicate key error, reported as ObjectAlreadyExists.
func (r *GormInventoryRepository) Add(ctx context.Context, aggregate *inventory.Inventory) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause(
				"inventory", aggregate.ProductID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing inventory record to the database.
// Select("*") forces zero values through: a fully drained row must persist
// available_quantity = 0.
func (r *GormInventoryRepository) Update(ctx context.Context, aggregate *inventory.Inventory) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&InventoryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByProductID retrieves the inventory record for a product without locking.
func (r *GormInventoryRepository) GetByProductID(
	ctx context.Context, productID kernel.UUID,
) (*inventory.Inventory, error) {
	return r.getByProductID(ctx, productID, false)
}

// GetByProductIDForUpdate retrieves the inventory record for a product under
// an exclusive row lock (SELECT ... FOR UPDATE). The caller must be inside a
// transaction; the lock is released on commit or rollback.
func (r *GormInventoryRepository) GetByProductIDForUpdate(
	ctx context.Context, productID kernel.UUID,
) (*inventory.Inventory, error) {
	return r.getByProductID(ctx, productID, true)
}

func (r *GormInventoryRepository) getByProductID(
	ctx context.Context, productID kernel.UUID, forUpdate bool,
) (*inventory.Inventory, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto InventoryDTO
	if err := db.First(&dto, "product_id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory", productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsByProductID reports whether a product already has an inventory record.
func (r *GormInventoryRepository) ExistsByProductID(
	ctx context.Context, productID kernel.UUID,
) (bool, error) {
	if err := productID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&InventoryDTO{}).
		Where("product_id = ?", productID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
