package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// defaultTrackingLocation is the initial tracking location applied when the
// creation request does not carry one.
const defaultTrackingLocation = "Warehouse - Preparing for shipment"

// CreateDeliveryCommandHandler creates the delivery record for a shipped
// order, denormalizing the farmer from the ordered product and the buyer
// from the order.
//
// An existing delivery for the order fails with ObjectAlreadyExists; the
// unique index on order_id gives the same answer to creations racing past
// the existence check. The auto-creation hook absorbs that error to stay
// idempotent, the manual path surfaces it as a conflict.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *slog.Logger
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory, logger *slog.Logger,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes the delivery creation command.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
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

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if ord.Status() != order.Shipped {
		return errs.NewInvalidTransitionError(
			"delivery", ord.Status().String(), delivery.Pending.String())
	}

	deliveryRepo := uow.DeliveryRepository()
	exists, err := deliveryRepo.ExistsByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewObjectAlreadyExistsError("delivery", cmd.OrderID().String())
	}

	prod, err := uow.ProductRepository().Get(ctx, ord.ProductID())
	if err != nil {
		return err
	}

	trackingLocation := cmd.TrackingLocation()
	if trackingLocation == "" {
		trackingLocation = defaultTrackingLocation
	}

	newDelivery, err := delivery.NewDelivery(
		cmd.DeliveryID(), cmd.OrderID(), prod.FarmerID(), ord.BuyerID(),
		cmd.EstimatedDelivery(), trackingLocation, cmd.Notes())
	if err != nil {
		return err
	}

	if err := deliveryRepo.Add(ctx, newDelivery); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// DeliveryAutoCreator adapts the delivery creation handler to the
// DeliveryCreator hook fired when an order ships. Each invocation creates the
// delivery under a fresh id with all defaults. Idempotent: an already
// existing delivery counts as success.
type DeliveryAutoCreator struct {
	handler CreateDeliveryCommandHandler
	logger  *slog.Logger
}

// NewDeliveryAutoCreator creates the auto-creation adapter.
func NewDeliveryAutoCreator(handler CreateDeliveryCommandHandler, logger *slog.Logger) DeliveryAutoCreator {
	return DeliveryAutoCreator{handler: handler, logger: logger}
}

// CreateForOrder creates the delivery record for a freshly shipped order.
func (a DeliveryAutoCreator) CreateForOrder(ctx context.Context, orderID kernel.UUID) error {
	cmd, err := NewCreateDeliveryCommand(kernel.NewUUID(), orderID, time.Time{}, "", "")
	if err != nil {
		return err
	}

	if err := a.handler.Handle(ctx, cmd); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			a.logger.WarnContext(ctx, "delivery already exists for order, skipping",
				slog.String("order_id", orderID.String()))
			return nil
		}
		return err
	}
	return nil
}
