// Package period resuelve ventanas de fechas (día, semana, mes) a partir de una
// fecha de referencia. Todas las fechas son de calendario: medianoche UTC.
package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/bbh-hotel/lavanderia/internal/domain"
)

// DateLayout formato ISO de las fechas de entrada y salida (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Kind granularidad del período.
type Kind string

// Granularidades soportadas.
const (
	Day   Kind = "day"
	Week  Kind = "week"
	Month Kind = "month"
)

// Range ventana inclusiva [Start, End] resuelta a partir de Ref.
type Range struct {
	Kind  Kind      `json:"kind"`
	Ref   time.Time `json:"ref"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains indica si la fecha d cae dentro de la ventana (comparación por día).
func (r Range) Contains(d time.Time) bool {
	d = Truncate(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days número de días de calendario cubiertos por la ventana.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// String devuelve "YYYY-MM-DD..YYYY-MM-DD".
func (r Range) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// Truncate lleva t a su fecha de calendario (00:00 UTC) conservando año, mes y día
// tal como se ven en la zona de t.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today fecha de calendario de now vista en loc. Con loc nil se usa UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Truncate(now.In(loc))
}

// Clock da la fecha "hoy" del hotel. El valor cero usa time.Now en UTC.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// Today fecha de calendario actual en la zona del reloj.
func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return Today(now(), c.Location)
}

// ParseKind normaliza el token del filtro: day|week|month, sus formas daily|weekly|monthly
// y los alias en portugués de la interfaz del hotel. Cualquier otro valor cae a Day.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weekly", "semana", "semanal":
		return Week
	case "month", "monthly", "mes", "mês", "mensal":
		return Month
	default:
		return Day
	}
}

// ParseDate interpreta una fecha ISO (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q", domain.ErrMalformedInput, s)
	}
	return t, nil
}

// Resolve calcula la ventana inclusiva para kind anclada en ref.
// La semana empieza el lunes (ISO) y el mes termina en su último día real.
func Resolve(kind Kind, ref time.Time) Range {
	ref = Truncate(ref)
	switch kind {
	case Week:
		offset := (int(ref.Weekday()) + 6) % 7 // lunes=0 ... domingo=6
		start := ref.AddDate(0, 0, -offset)
		return Range{Kind: Week, Ref: ref, Start: start, End: start.AddDate(0, 0, 6)}
	case Month:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		// El día 0 del mes siguiente es el último día de este mes.
		end := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		return Range{Kind: Month, Ref: ref, Start: start, End: end}
	default:
		return Range{Kind: Day, Ref: ref, Start: ref, End: ref}
	}
}

// FromQuery resuelve la ventana a partir de los parámetros del filtro de la interfaz.
// Una referencia vacía o ilegible se sustituye por today: en este contexto un filtro
// mal escrito nunca debe producir un error.
func FromQuery(kind, ref string, today time.Time) Range {
	d, err := ParseDate(ref)
	if err != nil {
		d = today
	}
	return Resolve(ParseKind(kind), d)
}

// LastDays devuelve la ventana de n días que termina en end (inclusive).
func LastDays(end time.Time, n int) Range {
	end = Truncate(end)
	if n < 1 {
		n = 1
	}
	return Range{Kind: Day, Ref: end, Start: end.AddDate(0, 0, -(n - 1)), End: end}
}
