package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bbh-hotel/lavanderia/internal/application/catalog"
	"github.com/bbh-hotel/lavanderia/internal/application/dto"
)

// ItemHandler maneja el catálogo de ítems (protegido).
type ItemHandler struct {
	uc *catalog.CatalogUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *catalog.CatalogUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar ítems activos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Filtro por nombre (subcadena)"
// @Success      200  {array}   dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListActive(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Agregar ítem al catálogo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, unit"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.Add(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Deactivate godoc
// @Summary      Desactivar ítem
// @Tags         items
// @Security     Bearer
// @Param        id  path  int  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/deactivate [post]
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Deactivate(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Seed carga el catálogo por defecto (solo admin).
// POST /api/items/seed
func (h *ItemHandler) Seed(c *fiber.Ctx) error {
	res, err := h.uc.SeedDefaults(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
