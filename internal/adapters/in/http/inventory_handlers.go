package http

import (
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// InitializeInventoryRequest is the body of POST /api/v1/inventory.
type InitializeInventoryRequest struct {
	ProductID       string `json:"productId"`
	InitialQuantity int    `json:"initialQuantity"`
}

// InitializeInventoryResponse echoes the ledger row created or found.
type InitializeInventoryResponse struct {
	ProductID         string `json:"productId"`
	AvailableQuantity int    `json:"availableQuantity"`
	ReservedQuantity  int    `json:"reservedQuantity"`
}

// UpdateInventoryRequest is the body of PUT /api/v1/inventory/{productId}.
type UpdateInventoryRequest struct {
	Quantity int `json:"quantity"`
}

// InventoryResponse is a single row of the inventory listing.
type InventoryResponse struct {
	ProductID         string    `json:"productId"`
	ProductName       string    `json:"productName"`
	AvailableQuantity int       `json:"availableQuantity"`
	ReservedQuantity  int       `json:"reservedQuantity"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// AvailabilityResponse is the result of an availability check.
type AvailabilityResponse struct {
	ProductID         string `json:"productId"`
	RequestedQuantity int    `json:"requestedQuantity"`
	AvailableQuantity int    `json:"availableQuantity"`
	Sufficient        bool   `json:"sufficient"`
}

// InitializeInventory handles POST /api/v1/inventory. Repeated calls for
// the same product return the existing row unchanged.
func (s *Server) InitializeInventory(ctx echo.Context) error {
	var req InitializeInventoryRequest
	if err := ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("productId", err))
	}

	cmd, err := commands.NewInitializeInventoryCommand(productID, req.InitialQuantity)
	if err != nil {
		return respondError(ctx, err)
	}

	inv, err := s.initializeInventoryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, InitializeInventoryResponse{
		ProductID:         inv.ProductID().String(),
		AvailableQuantity: inv.Available(),
		ReservedQuantity:  inv.Reserved(),
	})
}

// UpdateInventory handles PUT /api/v1/inventory/{productId}.
func (s *Server) UpdateInventory(ctx echo.Context) error {
	id, err := actorID(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	productID, err := pathUUID(ctx, "productId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateInventoryRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewUpdateInventoryCommand(id, productID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateInventoryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SyncInventory handles POST /api/v1/inventory/sync. Reconciles the
// legacy product quantity column for the whole catalog.
func (s *Server) SyncInventory(ctx echo.Context) error {
	cmd := commands.NewSyncAllInventoryCommand()

	if err := s.syncInventoryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SyncProductInventory handles POST /api/v1/inventory/{productId}/sync.
// Overwrites the ledger row from the product's catalog quantity, creating
// the row if missing.
func (s *Server) SyncProductInventory(ctx echo.Context) error {
	productID, err := pathUUID(ctx, "productId")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewSyncInventoryCommand(productID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.syncInventoryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetInventory handles GET /api/v1/inventory. An optional farmerId query
// parameter narrows the listing to one farmer's products.
func (s *Server) GetInventory(ctx echo.Context) error {
	var (
		query queries.GetInventoryQuery
		err   error
	)

	if farmerParam := ctx.QueryParam("farmerId"); farmerParam != "" {
		var farmerID kernel.UUID
		if farmerID, err = kernel.UUIDFromString(farmerParam); err != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("farmerId", err))
		}
		if query, err = queries.NewGetFarmerInventoryQuery(farmerID); err != nil {
			return respondError(ctx, err)
		}
	} else {
		query = queries.NewGetAllInventoryQuery()
	}

	return s.renderInventory(ctx, query)
}

// GetProductInventory handles GET /api/v1/inventory/{productId}.
func (s *Server) GetProductInventory(ctx echo.Context) error {
	productID, err := pathUUID(ctx, "productId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetInventoryQuery(productID)
	if err != nil {
		return respondError(ctx, err)
	}

	return s.renderInventory(ctx, query)
}

func (s *Server) renderInventory(ctx echo.Context, query queries.GetInventoryQuery) error {
	rows, err := s.getInventoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]InventoryResponse, len(rows))
	for i, row := range rows {
		response[i] = InventoryResponse{
			ProductID:         row.ProductID.String(),
			ProductName:       row.ProductName,
			AvailableQuantity: row.AvailableQuantity,
			ReservedQuantity:  row.ReservedQuantity,
			UpdatedAt:         row.UpdatedAt,
		}
	}

	if query.ByProduct() {
		return ctx.JSON(http.StatusOK, response[0])
	}
	return ctx.JSON(http.StatusOK, response)
}

// CheckAvailability handles GET /api/v1/inventory/{productId}/availability.
// The requested quantity comes from the quantity query parameter.
func (s *Server) CheckAvailability(ctx echo.Context) error {
	productID, err := pathUUID(ctx, "productId")
	if err != nil {
		return respondError(ctx, err)
	}

	quantity, err := strconv.Atoi(ctx.QueryParam("quantity"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("quantity", err))
	}

	query, err := queries.NewCheckAvailabilityQuery(productID, quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.checkAvailabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AvailabilityResponse{
		ProductID:         result.ProductID.String(),
		RequestedQuantity: result.RequestedQuantity,
		AvailableQuantity: result.AvailableQuantity,
		Sufficient:        result.Sufficient,
	})
}
