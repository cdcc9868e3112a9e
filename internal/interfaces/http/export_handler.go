package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/bbh-hotel/lavanderia/internal/application/analytics"
	"github.com/bbh-hotel/lavanderia/internal/application/dto"
)

// ExportHandler sirve las descargas CSV y PDF.
type ExportHandler struct {
	uc *appanalytics.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *appanalytics.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ManifestCSV godoc
// @Summary      Romaneio en CSV
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Param        date  query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Router       /api/exports/manifest.csv [get]
func (h *ExportHandler) ManifestCSV(c *fiber.Ctx) error {
	f, err := h.uc.ManifestCSV(c.Context(), c.Query("date"))
	return sendFile(c, f, err)
}

// ManifestPDF godoc
// @Summary      Romaneio en PDF para firma
// @Tags         exports
// @Security     Bearer
// @Produce      application/pdf
// @Param        date  query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Router       /api/exports/manifest.pdf [get]
func (h *ExportHandler) ManifestPDF(c *fiber.Ctx) error {
	f, err := h.uc.ManifestPDF(c.Context(), c.Query("date"))
	return sendFile(c, f, err)
}

// MovementsCSV godoc
// @Summary      Movimientos del período en CSV
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Param        period  query  string  false  "day|week|month (day por defecto)"
// @Param        ref     query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  file
// @Router       /api/exports/movements.csv [get]
func (h *ExportHandler) MovementsCSV(c *fiber.Ctx) error {
	f, err := h.uc.MovementsCSV(c.Context(), c.Query("period"), c.Query("ref"))
	return sendFile(c, f, err)
}

// StockCSV godoc
// @Summary      Inventario actual en CSV
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/exports/stock.csv [get]
func (h *ExportHandler) StockCSV(c *fiber.Ctx) error {
	f, err := h.uc.StockCSV(c.Context())
	return sendFile(c, f, err)
}

func sendFile(c *fiber.Ctx, f *dto.FileDTO, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.Send(f.Data)
}
