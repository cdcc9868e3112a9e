package dto

import "github.com/shopspring/decimal"

// StockLineDTO saldo actual de un ítem activo, redondeado a 2 decimales.
type StockLineDTO struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	AtHotel   decimal.Decimal `json:"at_hotel"`
	AtLaundry decimal.Decimal `json:"at_laundry"`
	Total     decimal.Decimal `json:"total"`
}

// PeriodDTO ventana inclusiva resuelta.
type PeriodDTO struct {
	Kind  string `json:"kind"`
	Ref   string `json:"ref"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// TotalsDTO sumas por tipo dentro de un período.
type TotalsDTO struct {
	Received          decimal.Decimal `json:"received"`
	Issued            decimal.Decimal `json:"issued"`
	Sent              decimal.Decimal `json:"sent"`
	Returned          decimal.Decimal `json:"returned"`
	Lost              decimal.Decimal `json:"lost"`
	LineCount         int             `json:"line_count"`
	DistinctItemCount int             `json:"distinct_item_count"`
}

// RangeTotalsDTO respuesta de GET /api/reports/totals.
type RangeTotalsDTO struct {
	Period PeriodDTO `json:"period"`
	Totals TotalsDTO `json:"totals"`
}

// ManifestLineDTO línea del romaneio, cantidad redondeada a entero.
type ManifestLineDTO struct {
	ItemID   int64  `json:"item_id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// ManifestDTO romaneio diario: envíos y retornos de una fecha.
type ManifestDTO struct {
	Date          string            `json:"date"`
	Sent          []ManifestLineDTO `json:"sent"`
	Returned      []ManifestLineDTO `json:"returned"`
	TotalSent     int64             `json:"total_sent"`
	TotalReturned int64             `json:"total_returned"`
}

// MovementsReportDTO movimientos de un período (alimenta la exportación CSV).
type MovementsReportDTO struct {
	Period    PeriodDTO          `json:"period"`
	Movements []MovementResponse `json:"movements"`
}

// FileDTO archivo generado para descarga.
type FileDTO struct {
	Name        string
	ContentType string
	Data        []byte
}
