package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// InitializeInventoryCommandHandler creates the ledger row for a product.
//
// The handler is idempotent in both the read-then-act sense and under races:
// an existing row is returned unchanged with a warning, and a concurrent
// initialization that slips past the existence check is absorbed when the
// unique index rejects the insert.
type InitializeInventoryCommandHandler struct {
	uowFactory InventoryUoWFactory
	logger     *slog.Logger
}

// NewInitializeInventoryCommandHandler creates a handler for ledger
// initialization.
func NewInitializeInventoryCommandHandler(
	uowFactory InventoryUoWFactory, logger *slog.Logger,
) InitializeInventoryCommandHandler {
	return InitializeInventoryCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the ledger initialization command and returns the ledger
// row, whether freshly created or already present.
func (h *InitializeInventoryCommandHandler) Handle(ctx context.Context, cmd InitializeInventoryCommand) (*inventory.Inventory, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ProductRepository().Get(ctx, cmd.ProductID()); err != nil {
		return nil, err
	}

	inventoryRepo := uow.InventoryRepository()
	exists, err := inventoryRepo.ExistsByProductID(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}
	if exists {
		h.logger.WarnContext(ctx, "inventory already initialized, skipping",
			slog.String("product_id", cmd.ProductID().String()))
		return inventoryRepo.GetByProductID(ctx, cmd.ProductID())
	}

	inv, err := inventory.NewInventory(kernel.NewUUID(), cmd.ProductID(), cmd.InitialQuantity())
	if err != nil {
		return nil, err
	}

	if err := inventoryRepo.Add(ctx, inv); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			h.logger.WarnContext(ctx, "inventory initialized concurrently, skipping",
				slog.String("product_id", cmd.ProductID().String()))
			// The rejected insert aborts the transaction, so the winning
			// row is read through a fresh unit of work.
			return h.uowFactory.Create().InventoryRepository().GetByProductID(ctx, cmd.ProductID())
		}
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return inv, nil
}
