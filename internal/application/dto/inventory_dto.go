package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/movements.
// Date en formato YYYY-MM-DD; vacío significa hoy.
type RegisterMovementRequest struct {
	Date      string          `json:"date,omitempty"`
	Type      string          `json:"type"`
	ItemID    int64           `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// BatchLine una línea (ítem, cantidad) de un registro en lote.
type BatchLine struct {
	ItemID   int64           `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// BatchMovementRequest body para POST /api/movements/batch: una fecha, un tipo y varias líneas.
type BatchMovementRequest struct {
	Date      string      `json:"date,omitempty"`
	Type      string      `json:"type"`
	Reference string      `json:"reference,omitempty"`
	Note      string      `json:"note,omitempty"`
	Lines     []BatchLine `json:"lines"`
}

// BatchResult cuántas líneas se insertaron y cuántas se descartaron.
type BatchResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// MovementQuery filtros de GET /api/movements.
type MovementQuery struct {
	PageRequest
	Type   string `query:"type"`
	ItemID int64  `query:"item_id"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// MovementResponse salida de un movimiento con el nombre del ítem.
type MovementResponse struct {
	ID        int64           `json:"id"`
	Date      string          `json:"date"`
	Type      string          `json:"type"`
	ItemID    int64           `json:"item_id"`
	ItemName  string          `json:"item_name,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference,omitempty"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewMovementResponse convierte la entidad en su salida HTTP.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		Date:      m.Date.Format("2006-01-02"),
		Type:      string(m.Type),
		ItemID:    m.ItemID,
		ItemName:  m.ItemName,
		Quantity:  m.Quantity,
		Reference: m.Reference,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}
