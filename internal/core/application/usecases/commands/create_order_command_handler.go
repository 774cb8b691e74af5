package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
//
// Placement is a single transaction: the buyer's role is checked, the
// product's ledger row is locked, stock is decremented with the no-oversell
// guard, the order is written with the total price frozen from the current
// unit price, and the catalog quantity mirror is refreshed. Concurrent
// placements on the same product serialize on the row lock, so the ledger
// can never go negative regardless of interleaving.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	buyer, err := uow.UserRepository().Get(ctx, cmd.BuyerID())
	if err != nil {
		return err
	}
	if buyer.Role() != user.Buyer {
		return errs.NewUnauthorizedError("create order")
	}

	productRepo := uow.ProductRepository()
	prod, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	inventoryRepo := uow.InventoryRepository()
	inv, err := inventoryRepo.GetByProductIDForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if err := inv.Decrease(cmd.Quantity()); err != nil {
		return err
	}
	if err := inventoryRepo.Update(ctx, inv); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.ProductID(), cmd.BuyerID(), cmd.Quantity(), prod.Price())
	if err != nil {
		return err
	}
	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
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
