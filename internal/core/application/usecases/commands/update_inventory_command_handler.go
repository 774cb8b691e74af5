package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// UpdateInventoryCommandHandler applies a manual stock override.
//
// The override runs under the exclusive row lock like every other ledger
// mutation, mirrors the new count into the catalog quantity column, and
// leaves an audit record in the log with the before and after values.
type UpdateInventoryCommandHandler struct {
	uowFactory InventoryUoWFactory
	logger     *slog.Logger
}

// NewUpdateInventoryCommandHandler creates a handler for manual stock
// overrides.
func NewUpdateInventoryCommandHandler(
	uowFactory InventoryUoWFactory, logger *slog.Logger,
) UpdateInventoryCommandHandler {
	return UpdateInventoryCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the stock override command.
func (h *UpdateInventoryCommandHandler) Handle(ctx context.Context, cmd UpdateInventoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	prod, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if actor.Role() != user.Admin &&
		!(actor.Role() == user.Farmer && prod.FarmerID().IsEqual(actor.ID())) {
		return errs.NewUnauthorizedError("update inventory")
	}

	inventoryRepo := uow.InventoryRepository()
	inv, err := inventoryRepo.GetByProductIDForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	previous := inv.Available()
	if err := inv.SetAvailable(cmd.Quantity()); err != nil {
		return err
	}

	if err := inventoryRepo.Update(ctx, inv); err != nil {
		return err
	}

	if err := prod.MirrorAvailability(inv.Available()); err != nil {
		return err
	}
	if err := productRepo.Update(ctx, prod); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "inventory manually updated",
		slog.String("product_id", cmd.ProductID().String()),
		slog.String("actor_id", cmd.ActorID().String()),
		slog.Int("previous_quantity", previous),
		slog.Int("new_quantity", inv.Available()))

	return nil
}
