// Package stock deriva saldos y totales a partir del libro de movimientos.
//
// No hay saldos almacenados: cada consulta vuelve a recorrer los movimientos.
// Convención de signos por tipo:
//
//	tipo      | en hotel | en lavandería
//	received  |   +q     |      0
//	returned  |   +q     |     -q
//	sent      |   -q     |     +q
//	issued    |   -q     |      0
//	lost      |   -q     |      0
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
)

// Effect signo (-1, 0, +1) que un tipo de movimiento aplica a cada ubicación.
type Effect struct {
	Hotel   int
	Laundry int
}

// EffectOf devuelve el efecto de un tipo. Un tipo fuera del conjunto no tiene efecto.
func EffectOf(t entity.MovementType) Effect {
	switch t {
	case entity.MovementReceived:
		return Effect{Hotel: 1}
	case entity.MovementReturned:
		return Effect{Hotel: 1, Laundry: -1}
	case entity.MovementSent:
		return Effect{Hotel: -1, Laundry: 1}
	case entity.MovementIssued, entity.MovementLost:
		return Effect{Hotel: -1}
	}
	return Effect{}
}

// Balance saldo de un ítem activo.
type Balance struct {
	ItemID    int64
	Name      string
	Unit      string
	AtHotel   decimal.Decimal
	AtLaundry decimal.Decimal
}

// Total suma de ambas ubicaciones. Las pérdidas lo reducen de forma permanente.
func (b Balance) Total() decimal.Decimal {
	return b.AtHotel.Add(b.AtLaundry)
}

// Apply aplica un movimiento al saldo.
func (b *Balance) Apply(m *entity.Movement) {
	e := EffectOf(m.Type)
	if e.Hotel != 0 {
		b.AtHotel = b.AtHotel.Add(m.Quantity.Mul(decimal.NewFromInt(int64(e.Hotel))))
	}
	if e.Laundry != 0 {
		b.AtLaundry = b.AtLaundry.Add(m.Quantity.Mul(decimal.NewFromInt(int64(e.Laundry))))
	}
}

// Summarize calcula el saldo de cada ítem de items reproduciendo movements completo
// (sin límite de fechas). Los ítems sin movimientos quedan en cero y los movimientos
// de ítems que no están en items se ignoran. El resultado se ordena por nombre.
func Summarize(items []*entity.Item, movements []*entity.Movement) []Balance {
	idx := make(map[int64]int, len(items))
	out := make([]Balance, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		idx[it.ID] = len(out)
		out = append(out, Balance{
			ItemID:    it.ID,
			Name:      it.Name,
			Unit:      it.Unit,
			AtHotel:   decimal.Zero,
			AtLaundry: decimal.Zero,
		})
	}
	for _, m := range movements {
		i, ok := idx[m.ItemID]
		if !ok {
			continue
		}
		out[i].Apply(m)
	}
	SortByName(out, func(b Balance) string { return b.Name })
	return out
}

// Totals agregados de un período: suma por tipo, filas y ítems distintos.
type Totals struct {
	Received          decimal.Decimal
	Issued            decimal.Decimal
	Sent              decimal.Decimal
	Returned          decimal.Decimal
	Lost              decimal.Decimal
	LineCount         int
	DistinctItemCount int
}

// ZeroTotals totales vacíos con todas las sumas inicializadas.
func ZeroTotals() Totals {
	return Totals{
		Received: decimal.Zero,
		Issued:   decimal.Zero,
		Sent:     decimal.Zero,
		Returned: decimal.Zero,
		Lost:     decimal.Zero,
	}
}

// ByType devuelve la suma del tipo t.
func (t Totals) ByType(mt entity.MovementType) decimal.Decimal {
	switch mt {
	case entity.MovementReceived:
		return t.Received
	case entity.MovementIssued:
		return t.Issued
	case entity.MovementSent:
		return t.Sent
	case entity.MovementReturned:
		return t.Returned
	case entity.MovementLost:
		return t.Lost
	}
	return decimal.Zero
}

// Tally suma por tipo los movimientos cuya fecha cae en r. No es un saldo acumulado:
// cada tipo se suma por separado, sin signo.
func Tally(movements []*entity.Movement, r period.Range) Totals {
	t := ZeroTotals()
	items := make(map[int64]struct{})
	for _, m := range movements {
		if !r.Contains(m.Date) {
			continue
		}
		switch m.Type {
		case entity.MovementReceived:
			t.Received = t.Received.Add(m.Quantity)
		case entity.MovementIssued:
			t.Issued = t.Issued.Add(m.Quantity)
		case entity.MovementSent:
			t.Sent = t.Sent.Add(m.Quantity)
		case entity.MovementReturned:
			t.Returned = t.Returned.Add(m.Quantity)
		case entity.MovementLost:
			t.Lost = t.Lost.Add(m.Quantity)
		}
		t.LineCount++
		items[m.ItemID] = struct{}{}
	}
	t.DistinctItemCount = len(items)
	return t
}

// Line cantidad agrupada por ítem en un listado (romaneio).
type Line struct {
	ItemID   int64
	Name     string
	Quantity decimal.Decimal
}

// GroupByItem agrupa los movimientos de tipo mt sumando cantidades por ítem,
// ordenados por nombre de ítem.
func GroupByItem(movements []*entity.Movement, mt entity.MovementType) []Line {
	idx := make(map[int64]int)
	var out []Line
	for _, m := range movements {
		if m.Type != mt {
			continue
		}
		i, ok := idx[m.ItemID]
		if !ok {
			idx[m.ItemID] = len(out)
			out = append(out, Line{ItemID: m.ItemID, Name: m.ItemName, Quantity: m.Quantity})
			continue
		}
		out[i].Quantity = out[i].Quantity.Add(m.Quantity)
	}
	SortByName(out, func(l Line) string { return l.Name })
	return out
}
