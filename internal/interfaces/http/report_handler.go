package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/bbh-hotel/lavanderia/internal/application/analytics"
)

// ReportHandler maneja los reportes de lavandería (protegido).
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stock godoc
// @Summary      Inventario actual por ítem
// @Description  Almacén, lavandería y total para cada ítem activo, calculados sobre todo el libro.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockLineDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	lines, err := h.uc.StockSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(lines)
}

// Totals godoc
// @Summary      Totales por tipo en un período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "day|week|month (day por defecto)"
// @Param        ref     query  string  false  "Fecha de referencia YYYY-MM-DD (hoy por defecto)"
// @Success      200  {object}  dto.RangeTotalsDTO
// @Router       /api/reports/totals [get]
func (h *ReportHandler) Totals(c *fiber.Ctx) error {
	out, err := h.uc.RangeTotals(c.Context(), c.Query("period"), c.Query("ref"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Manifest godoc
// @Summary      Romaneio del día
// @Description  Envíos y retornos de lavandería de una fecha, agrupados por ítem.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (hoy por defecto)"
// @Success      200  {object}  dto.ManifestDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/manifest [get]
func (h *ReportHandler) Manifest(c *fiber.Ctx) error {
	out, err := h.uc.Manifest(c.Context(), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Trend godoc
// @Summary      Envíos y retornos de los últimos 7 días
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TrendPointDTO
// @Router       /api/reports/trend [get]
func (h *ReportHandler) Trend(c *fiber.Ctx) error {
	out, err := h.uc.Trend(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// KPIs godoc
// @Summary      Indicadores del día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DailyKPIsDTO
// @Router       /api/reports/kpis [get]
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.DailyKPIs(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de un período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "day|week|month (day por defecto)"
// @Param        ref     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.MovementsReportDTO
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.MovementsInPeriod(c.Context(), c.Query("period"), c.Query("ref"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
