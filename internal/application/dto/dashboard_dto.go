package dto

import "github.com/shopspring/decimal"

// DailyKPIsDTO tarjetas del día: ítems activos y lo enviado/retornado hoy.
type DailyKPIsDTO struct {
	Date          string          `json:"date"`
	ActiveItems   int             `json:"active_items"`
	SentToday     decimal.Decimal `json:"sent_today"`
	ReturnedToday decimal.Decimal `json:"returned_today"`
}

// TrendPointDTO un día de la serie de los últimos 7 días.
type TrendPointDTO struct {
	Date     string          `json:"date"`
	Label    string          `json:"label"` // dd/mm
	Sent     decimal.Decimal `json:"sent"`
	Returned decimal.Decimal `json:"returned"`
}

// DashboardDTO respuesta de GET /api/dashboard.
// Reúne en una sola lectura el stock actual, los KPIs del día, la tendencia y los totales del período.
type DashboardDTO struct {
	KPIs   DailyKPIsDTO    `json:"kpis"`
	Trend  []TrendPointDTO `json:"trend"`
	Stock  []StockLineDTO  `json:"stock"`
	Period RangeTotalsDTO  `json:"period"`
}
