package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateDeliveryRequest is the body of POST /api/v1/deliveries.
// EstimatedDeliveryDate is optional, a default is applied when omitted.
type CreateDeliveryRequest struct {
	OrderID               string     `json:"orderId"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate,omitempty"`
	TrackingLocation      string     `json:"trackingLocation,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
}

// CreateDeliveryResponse returns the identifier of the created delivery.
type CreateDeliveryResponse struct {
	ID string `json:"id"`
}

// UpdateDeliveryStatusRequest is the body of PATCH /api/v1/orders/{orderId}/delivery/status.
type UpdateDeliveryStatusRequest struct {
	Status           string `json:"status"`
	TrackingLocation string `json:"trackingLocation,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// DeliveryResponse is a single row of the delivery listing.
type DeliveryResponse struct {
	ID                    string     `json:"id"`
	OrderID               string     `json:"orderId"`
	Status                string     `json:"status"`
	EstimatedDeliveryDate time.Time  `json:"estimatedDeliveryDate"`
	ActualDeliveryDate    *time.Time `json:"actualDeliveryDate,omitempty"`
	TrackingLocation      string     `json:"trackingLocation,omitempty"`
	DeliveryNotes         string     `json:"deliveryNotes,omitempty"`
}

// CreateDelivery handles POST /api/v1/deliveries. Deliveries are normally
// created automatically when an order ships, this endpoint covers manual
// creation for orders that predate the automation.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var req CreateDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	var estimated time.Time
	if req.EstimatedDeliveryDate != nil {
		estimated = *req.EstimatedDeliveryDate
	}

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, orderID, estimated, req.TrackingLocation, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateDeliveryResponse{ID: deliveryID.String()})
}

// GetDeliveries handles GET /api/v1/deliveries. Buyers see deliveries of
// their own orders, farmers see deliveries they fulfil, admins see everything.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	id, role, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetDeliveriesQuery(id, role)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveries, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryListResponse(deliveries))
}

// GetDeliveryByOrder handles GET /api/v1/orders/{orderId}/delivery.
func (s *Server) GetDeliveryByOrder(ctx echo.Context) error {
	id, role, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetDeliveryByOrderQuery(id, role, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveries, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryListResponse(deliveries)[0])
}

// UpdateDeliveryStatus handles PATCH /api/v1/orders/{orderId}/delivery/status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	id, err := actorID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateDeliveryStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		id, orderID, status, req.TrackingLocation, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func deliveryListResponse(deliveries []queries.GetDeliveriesQueryResponse) []DeliveryResponse {
	response := make([]DeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		response[i] = DeliveryResponse{
			ID:                    d.ID.String(),
			OrderID:               d.OrderID.String(),
			Status:                d.Status,
			EstimatedDeliveryDate: d.EstimatedDeliveryDate,
			ActualDeliveryDate:    d.ActualDeliveryDate,
			TrackingLocation:      d.TrackingLocation,
			DeliveryNotes:         d.DeliveryNotes,
		}
	}
	return response
}
