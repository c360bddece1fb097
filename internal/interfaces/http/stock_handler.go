package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mgudino/stock-ledger-api/internal/application/dto"
	"github.com/mgudino/stock-ledger-api/internal/application/inventory"
)

// StockHandler handles the stock mutation and read endpoints under a
// warehouse (protected).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler builds the handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Add godoc
// @Summary      Add a stock line to a warehouse
// @Description  Creates the line and the movement record documenting the
// @Description  initial quantity, committed atomically.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Warehouse id"
// @Param        body  body  dto.AddStockRequest  true  "variant_id, quantities, logistics metadata, reason"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.AddStock(c.Context(), GetTenantID(c), c.Params("id"), GetActorID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a stock line
// @Description  Partial update; a movement record is created only when the
// @Description  available quantity changes. Retry on 409 with fresh state.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "Warehouse id"
// @Param        lineId  path  string  true  "Stock line id"
// @Param        body    body  dto.UpdateStockRequest  true  "Fields to replace plus reason"
// @Success      200     {object}  dto.StockChangeResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{lineId} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.UpdateStock(c.Context(), GetTenantID(c), c.Params("id"), c.Params("lineId"), GetActorID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Remove a stock line (tombstone)
// @Description  Zeroes the quantity and records the removal movement. The
// @Description  row is retained so history stays attributable.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "Warehouse id"
// @Param        lineId  path  string  true  "Stock line id"
// @Param        body    body  dto.RemoveStockRequest  false  "Optional reason"
// @Success      200     {object}  dto.StockChangeResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{lineId} [delete]
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveStockRequest
	// Body is optional on DELETE.
	_ = c.BodyParser(&in)
	out, err := h.uc.RemoveStock(c.Context(), GetTenantID(c), c.Params("id"), c.Params("lineId"), GetActorID(c), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetLine godoc
// @Summary      Get a stock line
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "Warehouse id"
// @Param        lineId  path  string  true  "Stock line id"
// @Success      200     {object}  dto.StockLineResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock/{lineId} [get]
func (h *StockHandler) GetLine(c *fiber.Ctx) error {
	out, err := h.uc.GetStockLine(c.Context(), GetTenantID(c), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List stock lines of a warehouse
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Warehouse id"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.StockLineListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListStock(c.Context(), GetTenantID(c), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
