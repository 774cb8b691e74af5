package commands

import (
	"context"

	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels a pending order on behalf of its buyer
// or an admin.
//
// Cancellation and the stock refund commit atomically: the order moves to
// Cancelled, the ledger row is re-locked and incremented by the order
// quantity, and the catalog mirror is refreshed. Orders that have shipped
// can no longer be cancelled.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if actor.Role() != user.Admin && !ord.BuyerID().IsEqual(actor.ID()) {
		return errs.NewUnauthorizedError("cancel order")
	}

	if err := ord.Cancel(); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	inventoryRepo := uow.InventoryRepository()
	inv, err := inventoryRepo.GetByProductIDForUpdate(ctx, ord.ProductID())
	if err != nil {
		return err
	}

	if err := inv.Increase(ord.Quantity()); err != nil {
		return err
	}
	if err := inventoryRepo.Update(ctx, inv); err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	prod, err := productRepo.Get(ctx, ord.ProductID())
	if err != nil {
		return err
	}
	if err := prod.MirrorAvailability(inv.Available()); err != nil {
		return err
	}
	if err := productRepo.Update(ctx, prod); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
