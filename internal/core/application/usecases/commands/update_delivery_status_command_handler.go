package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"
)

// UpdateDeliveryStatusCommandHandler applies carrier tracking updates.
//
// When an update confirms the delivery for the first time, the actual
// delivery date is stamped and the order is marked Delivered in the same
// transaction, so the two records can never disagree. Later Delivered
// updates keep the original date and do not touch the order again.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *slog.Logger
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for tracking
// updates.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory, logger *slog.Logger,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the tracking update command.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	del, err := deliveryRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if actor.Role() != user.Admin &&
		!(actor.Role() == user.Farmer && del.FarmerID().IsEqual(actor.ID())) {
		return errs.NewUnauthorizedError("update delivery status")
	}

	confirmedDelivered, err := del.UpdateStatus(
		cmd.NewStatus(), cmd.TrackingLocation(), cmd.Notes(), time.Now())
	if err != nil {
		return err
	}

	if err := deliveryRepo.Update(ctx, del); err != nil {
		return err
	}

	if confirmedDelivered {
		orderRepo := uow.OrderRepository()
		ord, ordErr := orderRepo.Get(ctx, del.OrderID())
		if ordErr != nil {
			return ordErr
		}

		// The order may already be Delivered through the status update
		// path; the confirmation then only stamps the date.
		if ord.Status() != order.Delivered {
			if markErr := ord.MarkDelivered(); markErr != nil {
				return markErr
			}
			if updErr := orderRepo.Update(ctx, ord); updErr != nil {
				return updErr
			}

			h.logger.InfoContext(ctx, "delivery confirmed, order marked delivered",
				slog.String("delivery_id", del.ID().String()),
				slog.String("order_id", del.OrderID().String()))
		}
	}

	return uow.Commit(ctx)
}
