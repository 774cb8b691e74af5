package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// DeliveryCreator creates the delivery record for a shipped order.
// Implemented by the delivery auto-creation flow; invoked after the status
// change commits so a delivery failure can never roll back the shipment.
type DeliveryCreator interface {
	CreateForOrder(ctx context.Context, orderID kernel.UUID) error
}

// UpdateOrderStatusCommandHandler moves an order through its lifecycle on
// behalf of the owning farmer or an admin.
//
// When the order enters Shipped for the first time, the handler fires
// delivery auto-creation after the commit. Auto-creation failures are logged
// and swallowed: the shipment stands and the delivery can be created
// explicitly later.
type UpdateOrderStatusCommandHandler struct {
	uowFactory      OrderUoWFactory
	deliveryCreator DeliveryCreator
	logger          *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status
// changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory, deliveryCreator DeliveryCreator, logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:      uowFactory,
		deliveryCreator: deliveryCreator,
		logger:          logger,
	}
}

// Handle processes the status change command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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
	if actor.Role() != user.Farmer && actor.Role() != user.Admin {
		return errs.NewUnauthorizedError("update order status")
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if actor.Role() == user.Farmer {
		prod, prodErr := uow.ProductRepository().Get(ctx, ord.ProductID())
		if prodErr != nil {
			return prodErr
		}
		if !prod.FarmerID().IsEqual(actor.ID()) {
			return errs.NewUnauthorizedError("update order status")
		}
	}

	enteredShipped := cmd.NewStatus() == order.Shipped && ord.Status() != order.Shipped

	if err := ord.ChangeStatus(cmd.NewStatus()); err != nil {
		return err
	}
	if err := orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if enteredShipped {
		if err := h.deliveryCreator.CreateForOrder(ctx, cmd.OrderID()); err != nil {
			h.logger.ErrorContext(ctx, "delivery auto-creation failed, order remains shipped",
				slog.String("order_id", cmd.OrderID().String()),
				slog.Any("error", err))
		}
	}

	return nil
}
