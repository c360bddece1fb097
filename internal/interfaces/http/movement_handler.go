package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mgudino/stock-ledger-api/internal/application/dto"
	"github.com/mgudino/stock-ledger-api/internal/application/inventory"
)

// MovementHandler serves the ledger read path (protected).
type MovementHandler struct {
	uc *inventory.LedgerUseCase
}

// NewMovementHandler builds the handler.
func NewMovementHandler(uc *inventory.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Query godoc
// @Summary      Query the movement ledger of a warehouse
// @Description  Committed records only, newest first by occurred_at.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id             path   string  true   "Warehouse id"
// @Param        stock_line_id  query  string  false  "Filter by stock line"
// @Param        variant_id     query  string  false  "Filter by variant"
// @Param        actor_id       query  string  false  "Filter by actor"
// @Param        from           query  string  false  "RFC3339 lower bound on occurred_at"
// @Param        to             query  string  false  "RFC3339 upper bound on occurred_at"
// @Param        limit          query  int     false  "Limit"   default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/movements [get]
func (h *MovementHandler) Query(c *fiber.Ctx) error {
	in := dto.MovementQueryRequest{
		StockLineID: c.Query("stock_line_id"),
		VariantID:   c.Query("variant_id"),
		ActorID:     c.Query("actor_id"),
	}
	in.Limit = c.QueryInt("limit", 20)
	in.Offset = c.QueryInt("offset", 0)

	var err error
	if in.From, err = parseTimeQuery(c.Query("from")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must be RFC3339"})
	}
	if in.To, err = parseTimeQuery(c.Query("to")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must be RFC3339"})
	}

	out, err := h.uc.Query(c.Context(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one movement record
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id          path  string  true  "Warehouse id"
// @Param        movementId  path  string  true  "Movement id"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/movements/{movementId} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetTenantID(c), c.Params("id"), c.Params("movementId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
