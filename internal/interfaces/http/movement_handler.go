package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/application/inventory"
)

// MovementHandler maneja el libro de movimientos (protegido).
type MovementHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.RegisterMovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      Últimos movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type     query  string  false  "received|issued|sent|returned|lost"
// @Param        item_id  query  int     false  "ID del ítem"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        limit    query  int     false  "Máximo de filas (50 por defecto, 500 máximo)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	q := dto.MovementQuery{
		PageRequest: dto.PageRequest{Limit: c.QueryInt("limit")},
		Type:        c.Query("type"),
		ItemID:      int64(c.QueryInt("item_id")),
		From:        c.Query("from"),
		To:          c.Query("to"),
	}
	list, err := h.uc.ListRecent(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Registrar movimiento
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "date, type, item_id, quantity, reference, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Record(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBatch godoc
// @Summary      Registrar movimientos en lote
// @Description  Una fecha y un tipo para varias líneas. Las líneas inválidas se descartan y se cuentan.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchMovementRequest  true  "date, type, reference, note, lines"
// @Success      201   {object}  dto.BatchResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements/batch [post]
func (h *MovementHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.BatchMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordBatch(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Borrar movimiento
// @Description  Idempotente: borrar un id inexistente también responde 204.
// @Tags         movements
// @Security     Bearer
// @Param        id  path  int  true  "ID del movimiento"
// @Success      204
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
