// Package analytics arma los reportes de lavandería: saldo actual, totales por
// período, romaneio diario, tendencia de 7 días y KPIs del día.
//
// Cada método público abre una única sesión de lectura; los saldos se recalculan
// sobre el libro completo en cada llamada.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
	"github.com/bbh-hotel/lavanderia/internal/domain/stock"
)

const trendDays = 7

// ReportUseCase ensamblador de reportes.
type ReportUseCase struct {
	session SessionRunner
	clock   period.Clock
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(session SessionRunner, clock period.Clock) *ReportUseCase {
	return &ReportUseCase{session: session, clock: clock}
}

// StockSummary saldo actual de cada ítem activo, ordenado por nombre.
func (uc *ReportUseCase) StockSummary(ctx context.Context) ([]dto.StockLineDTO, error) {
	var out []dto.StockLineDTO
	err := uc.session.Read(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		var err error
		out, err = stockSummary(ctx, itemRepo, movRepo)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reporte: stock: %w", err)
	}
	return out, nil
}

// RangeTotals totales por tipo en la ventana (kind, ref). Una referencia ilegible se toma como hoy.
func (uc *ReportUseCase) RangeTotals(ctx context.Context, kind, ref string) (*dto.RangeTotalsDTO, error) {
	r := period.FromQuery(kind, ref, uc.clock.Today())
	var out dto.RangeTotalsDTO
	err := uc.session.Read(ctx, func(_ repository.ItemRepository, movRepo repository.MovementRepository) error {
		movs, err := movRepo.ListInRange(ctx, r.Start, r.End)
		if err != nil {
			return err
		}
		out = rangeTotals(movs, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reporte: totales %s: %w", r, err)
	}
	return &out, nil
}

// Manifest romaneio de la fecha date (YYYY-MM-DD; vacía o ilegible = hoy).
func (uc *ReportUseCase) Manifest(ctx context.Context, date string) (*dto.ManifestDTO, error) {
	day := period.FromQuery(string(period.Day), date, uc.clock.Today()).Start
	var out *dto.ManifestDTO
	err := uc.session.Read(ctx, func(_ repository.ItemRepository, movRepo repository.MovementRepository) error {
		movs, err := movRepo.ListInRange(ctx, day, day)
		if err != nil {
			return err
		}
		out = manifest(day, movs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reporte: romaneio %s: %w", day.Format(period.DateLayout), err)
	}
	return out, nil
}

// Trend serie de los últimos 7 días terminando hoy, del más antiguo al más reciente.
func (uc *ReportUseCase) Trend(ctx context.Context) ([]dto.TrendPointDTO, error) {
	r := period.LastDays(uc.clock.Today(), trendDays)
	var out []dto.TrendPointDTO
	err := uc.session.Read(ctx, func(_ repository.ItemRepository, movRepo repository.MovementRepository) error {
		movs, err := movRepo.ListInRange(ctx, r.Start, r.End)
		if err != nil {
			return err
		}
		out = trend(r, movs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reporte: tendencia: %w", err)
	}
	return out, nil
}

// DailyKPIs ítems activos y lo enviado/retornado hoy.
func (uc *ReportUseCase) DailyKPIs(ctx context.Context) (*dto.DailyKPIsDTO, error) {
	today := uc.clock.Today()
	var out dto.DailyKPIsDTO
	err := uc.session.Read(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		active, err := itemRepo.CountActive(ctx)
		if err != nil {
			return err
		}
		movs, err := movRepo.ListInRange(ctx, today, today)
		if err != nil {
			return err
		}
		out = dailyKPIs(today, active, movs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reporte: kpis: %w", err)
	}
	return &out, nil
}

// MovementsInPeriod movimientos de la ventana (kind, ref) por fecha e id ascendentes.
func (uc *ReportUseCase) MovementsInPeriod(ctx context.Context, kind, ref string) (*dto.MovementsReportDTO, error) {
	r := period.FromQuery(kind, ref, uc.clock.Today())
	out := &dto.MovementsReportDTO{Period: periodDTO(r), Movements: []dto.MovementResponse{}}
	err := uc.session.Read(ctx, func(_ repository.ItemRepository, movRepo repository.MovementRepository) error {
		movs, err := movRepo.ListInRange(ctx, r.Start, r.End)
		if err != nil {
			return err
		}
		for _, m := range movs {
			out.Movements = append(out.Movements, dto.NewMovementResponse(m))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reporte: movimientos %s: %w", r, err)
	}
	return out, nil
}

// ── Ensamblado (sin E/S) ──────────────────────────────────────────────────────

func stockSummary(ctx context.Context, itemRepo repository.ItemRepository, movRepo repository.MovementRepository) ([]dto.StockLineDTO, error) {
	items, err := itemRepo.ListActive(ctx, "")
	if err != nil {
		return nil, err
	}
	movs, err := movRepo.ListAll(ctx, true)
	if err != nil {
		return nil, err
	}
	balances := stock.Summarize(items, movs)
	out := make([]dto.StockLineDTO, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.StockLineDTO{
			ItemID:    b.ItemID,
			Name:      b.Name,
			Unit:      b.Unit,
			AtHotel:   b.AtHotel.Round(2),
			AtLaundry: b.AtLaundry.Round(2),
			Total:     b.Total().Round(2),
		})
	}
	return out, nil
}

func periodDTO(r period.Range) dto.PeriodDTO {
	return dto.PeriodDTO{
		Kind:  string(r.Kind),
		Ref:   r.Ref.Format(period.DateLayout),
		Start: r.Start.Format(period.DateLayout),
		End:   r.End.Format(period.DateLayout),
	}
}

func rangeTotals(movs []*entity.Movement, r period.Range) dto.RangeTotalsDTO {
	t := stock.Tally(movs, r)
	return dto.RangeTotalsDTO{
		Period: periodDTO(r),
		Totals: dto.TotalsDTO{
			Received:          t.Received,
			Issued:            t.Issued,
			Sent:              t.Sent,
			Returned:          t.Returned,
			Lost:              t.Lost,
			LineCount:         t.LineCount,
			DistinctItemCount: t.DistinctItemCount,
		},
	}
}

// manifest agrupa envíos y retornos del día. Cada línea se redondea a entero y el
// total es el redondeo de la suma exacta (no la suma de las líneas redondeadas).
func manifest(day time.Time, movs []*entity.Movement) *dto.ManifestDTO {
	out := &dto.ManifestDTO{Date: day.Format(period.DateLayout)}
	build := func(mt entity.MovementType) ([]dto.ManifestLineDTO, int64) {
		lines := stock.GroupByItem(movs, mt)
		res := make([]dto.ManifestLineDTO, 0, len(lines))
		sum := decimal.Zero
		for _, l := range lines {
			sum = sum.Add(l.Quantity)
			res = append(res, dto.ManifestLineDTO{ItemID: l.ItemID, Name: l.Name, Quantity: l.Quantity.Round(0).IntPart()})
		}
		return res, sum.Round(0).IntPart()
	}
	out.Sent, out.TotalSent = build(entity.MovementSent)
	out.Returned, out.TotalReturned = build(entity.MovementReturned)
	return out
}

func trend(r period.Range, movs []*entity.Movement) []dto.TrendPointDTO {
	out := make([]dto.TrendPointDTO, 0, r.Days())
	idx := make(map[string]int, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		key := d.Format(period.DateLayout)
		idx[key] = len(out)
		out = append(out, dto.TrendPointDTO{
			Date:     key,
			Label:    d.Format("02/01"),
			Sent:     decimal.Zero,
			Returned: decimal.Zero,
		})
	}
	for _, m := range movs {
		i, ok := idx[period.Truncate(m.Date).Format(period.DateLayout)]
		if !ok {
			continue
		}
		switch m.Type {
		case entity.MovementSent:
			out[i].Sent = out[i].Sent.Add(m.Quantity)
		case entity.MovementReturned:
			out[i].Returned = out[i].Returned.Add(m.Quantity)
		}
	}
	return out
}

func dailyKPIs(today time.Time, active int, movs []*entity.Movement) dto.DailyKPIsDTO {
	t := stock.Tally(movs, period.Resolve(period.Day, today))
	return dto.DailyKPIsDTO{
		Date:          today.Format(period.DateLayout),
		ActiveItems:   active,
		SentToday:     t.Sent,
		ReturnedToday: t.Returned,
	}
}
