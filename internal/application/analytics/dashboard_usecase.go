package analytics

import (
	"context"
	"fmt"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
)

// Dashboard construye la pantalla principal en una sola sesión de lectura:
//  1. Stock actual (ítems activos + libro completo de ítems activos)
//  2. Una consulta por rango que cubre la ventana elegida, la semana de tendencia y hoy
//  3. KPIs, tendencia y totales del período se derivan en memoria de esa consulta
func (uc *ReportUseCase) Dashboard(ctx context.Context, kind, ref string) (*dto.DashboardDTO, error) {
	today := uc.clock.Today()
	r := period.FromQuery(kind, ref, today)
	week := period.LastDays(today, trendDays)

	// Ventana que cubre las tres vistas.
	start, end := r.Start, r.End
	if week.Start.Before(start) {
		start = week.Start
	}
	if week.End.After(end) {
		end = week.End
	}

	out := &dto.DashboardDTO{}
	err := uc.session.Read(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		var err error
		if out.Stock, err = stockSummary(ctx, itemRepo, movRepo); err != nil {
			return fmt.Errorf("stock: %w", err)
		}
		active, err := itemRepo.CountActive(ctx)
		if err != nil {
			return fmt.Errorf("ítems activos: %w", err)
		}
		movs, err := movRepo.ListInRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("movimientos %s..%s: %w", start.Format(period.DateLayout), end.Format(period.DateLayout), err)
		}

		out.KPIs = dailyKPIs(today, active, movs)
		out.Trend = trend(week, movs)
		out.Period = rangeTotals(movs, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return out, nil
}
