package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// SyncInventoryCommandHandler overwrites ledger counts from the catalog.
//
// Legacy catalog CRUD writes product.quantity directly without touching the
// ledger; a resync makes the ledger converge to the catalog value again.
// Products without a ledger row get one created. Each product syncs in its
// own short transaction so a catalog-wide run never holds more than one row
// lock at a time.
type SyncInventoryCommandHandler struct {
	uowFactory InventoryUoWFactory
	logger     *slog.Logger
}

// NewSyncInventoryCommandHandler creates a handler for catalog resyncs.
func NewSyncInventoryCommandHandler(
	uowFactory InventoryUoWFactory, logger *slog.Logger,
) SyncInventoryCommandHandler {
	return SyncInventoryCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the resync command.
func (h *SyncInventoryCommandHandler) Handle(ctx context.Context, cmd SyncInventoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.All() {
		return h.syncProduct(ctx, cmd.ProductID())
	}

	products, err := h.listProductIDs(ctx)
	if err != nil {
		return err
	}

	var errCount int
	for _, productID := range products {
		if err := h.syncProduct(ctx, productID); err != nil {
			errCount++
			h.logger.ErrorContext(ctx, "inventory sync failed for product",
				slog.String("product_id", productID.String()),
				slog.Any("error", err))
		}
	}

	if errCount > 0 {
		return fmt.Errorf("inventory sync failed for %d of %d products", errCount, len(products))
	}
	return nil
}

func (h *SyncInventoryCommandHandler) listProductIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()

	products, err := uow.ProductRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID())
	}
	return ids, nil
}

func (h *SyncInventoryCommandHandler) syncProduct(ctx context.Context, productID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	prod, err := uow.ProductRepository().Get(ctx, productID)
	if err != nil {
		return err
	}

	inventoryRepo := uow.InventoryRepository()
	inv, err := inventoryRepo.GetByProductIDForUpdate(ctx, productID)
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}

		inv, err = inventory.NewInventory(kernel.NewUUID(), productID, prod.Quantity())
		if err != nil {
			return err
		}

		h.logger.InfoContext(ctx, "creating missing inventory record from catalog",
			slog.String("product_id", productID.String()),
			slog.Int("quantity", prod.Quantity()))

		if err = inventoryRepo.Add(ctx, inv); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	if inv.Available() == prod.Quantity() {
		return nil
	}

	if err = inv.SetAvailable(prod.Quantity()); err != nil {
		return err
	}
	if err = inventoryRepo.Update(ctx, inv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
