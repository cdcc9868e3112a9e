package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/bbh-hotel/lavanderia/internal/application/analytics"
)

// DashboardHandler maneja la pantalla principal.
type DashboardHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve stock, KPIs del día, tendencia de 7 días y totales del período elegido.
// GET /api/dashboard?period=month&ref=2024-05-10
//
// period acepta day|week|month (day por defecto); sin ref usa hoy según la zona horaria del hotel.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Dashboard(c.Context(), c.Query("period"), c.Query("ref"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
