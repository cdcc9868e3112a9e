package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro de lavandería.
type MovementType string

// Tipos de movimiento.
const (
	MovementReceived MovementType = "received" // entrada al hotel
	MovementIssued   MovementType = "issued"   // salida / baja de uso
	MovementSent     MovementType = "sent"     // envío a la lavandería
	MovementReturned MovementType = "returned" // retorno desde la lavandería
	MovementLost     MovementType = "lost"     // pérdida
)

// MovementTypes lista cerrada en el orden en que se presentan los totales.
var MovementTypes = []MovementType{
	MovementReceived, MovementIssued, MovementSent, MovementReturned, MovementLost,
}

// Valid indica si t pertenece al conjunto cerrado de tipos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementReceived, MovementIssued, MovementSent, MovementReturned, MovementLost:
		return true
	}
	return false
}

// ParseMovementType normaliza s (espacios y mayúsculas) y lo busca en el conjunto
// cerrado. Acepta también los nombres en portugués de la interfaz del hotel.
func ParseMovementType(s string) (MovementType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "received", "entrada":
		return MovementReceived, true
	case "issued", "saida", "saída":
		return MovementIssued, true
	case "sent", "envio":
		return MovementSent, true
	case "returned", "retorno":
		return MovementReturned, true
	case "lost", "perda":
		return MovementLost, true
	}
	return "", false
}

// Movement es un asiento fechado del libro. Inmutable: solo se puede borrar completo.
type Movement struct {
	ID        int64
	Date      time.Time // fecha de calendario (00:00 UTC)
	Type      MovementType
	ItemID    int64
	Quantity  decimal.Decimal // siempre > 0; el signo lo decide el tipo
	Reference string
	Note      string
	CreatedAt time.Time

	// Campo unido (no siempre poblado).
	ItemName string
}

// QuantityScale decimales que guarda la columna quantity (NUMERIC(14,3)).
const QuantityScale = 3

// ValidQuantity indica si q es > 0 y cabe en QuantityScale decimales sin redondeo.
func ValidQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && q.Equal(q.Truncate(QuantityScale))
}
