package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
// The caller is identified by the X-User-Id and X-User-Role headers set
// by the API gateway.
type Server struct {
	// Command handlers
	initializeInventoryHandler  commands.InitializeInventoryCommandHandler
	updateInventoryHandler      commands.UpdateInventoryCommandHandler
	syncInventoryHandler        commands.SyncInventoryCommandHandler
	createOrderHandler          commands.CreateOrderCommandHandler
	updateOrderStatusHandler    commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	createDeliveryHandler       commands.CreateDeliveryCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler

	// Query handlers
	getOrdersHandler         queries.GetOrdersQueryHandler
	getInventoryHandler      queries.GetInventoryQueryHandler
	checkAvailabilityHandler queries.CheckAvailabilityQueryHandler
	getDeliveriesHandler     queries.GetDeliveriesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	initializeInventoryHandler commands.InitializeInventoryCommandHandler,
	updateInventoryHandler commands.UpdateInventoryCommandHandler,
	syncInventoryHandler commands.SyncInventoryCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getInventoryHandler queries.GetInventoryQueryHandler,
	checkAvailabilityHandler queries.CheckAvailabilityQueryHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
) *Server {
	return &Server{
		initializeInventoryHandler:  initializeInventoryHandler,
		updateInventoryHandler:      updateInventoryHandler,
		syncInventoryHandler:        syncInventoryHandler,
		createOrderHandler:          createOrderHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		cancelOrderHandler:          cancelOrderHandler,
		createDeliveryHandler:       createDeliveryHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		getOrdersHandler:            getOrdersHandler,
		getInventoryHandler:         getInventoryHandler,
		checkAvailabilityHandler:    checkAvailabilityHandler,
		getDeliveriesHandler:        getDeliveriesHandler,
	}
}

// RegisterRoutes attaches all API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.PATCH("/orders/:orderId/status", s.UpdateOrderStatus)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.GET("/orders/:orderId/delivery", s.GetDeliveryByOrder)
	api.PATCH("/orders/:orderId/delivery/status", s.UpdateDeliveryStatus)

	api.POST("/inventory", s.InitializeInventory)
	api.GET("/inventory", s.GetInventory)
	api.POST("/inventory/sync", s.SyncInventory)
	api.PUT("/inventory/:productId", s.UpdateInventory)
	api.GET("/inventory/:productId", s.GetProductInventory)
	api.POST("/inventory/:productId/sync", s.SyncProductInventory)
	api.GET("/inventory/:productId/availability", s.CheckAvailability)

	api.POST("/deliveries", s.CreateDelivery)
	api.GET("/deliveries", s.GetDeliveries)
}

// ErrorResponse is the JSON body returned for all failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps an application error to its HTTP status and renders
// the error body.
func respondError(ctx echo.Context, err error) error {
	status := statusFromError(err)
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// actorID extracts the caller identity from the X-User-Id header.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-User-Id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("X-User-Id", err)
	}
	return id, nil
}

// actor extracts the caller identity and role from the request headers.
// Queries cannot resolve the role from storage, so it must come with
// the request.
func actor(ctx echo.Context) (kernel.UUID, user.Role, error) {
	id, err := actorID(ctx)
	if err != nil {
		return kernel.UUID{}, user.UnknownRole, err
	}

	role, err := user.RoleFromString(ctx.Request().Header.Get("X-User-Role"))
	if err != nil {
		return kernel.UUID{}, user.UnknownRole, errs.NewValueIsInvalidErrorWithCause("X-User-Role", err)
	}

	return id, role, nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}
