package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
)

// MovementInputDTO entrada ya validada para registrar un movimiento.
type MovementInputDTO struct {
	Date      time.Time
	Type      entity.MovementType
	ItemID    int64
	Quantity  decimal.Decimal
	Reference string
	Note      string
}

func (in MovementInputDTO) movement() *entity.Movement {
	return &entity.Movement{
		Date:      in.Date,
		Type:      in.Type,
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Note:      in.Note,
	}
}

// inputFromRequest adapta el request HTTP: tipo dentro del conjunto cerrado y fecha
// ISO (vacía = hoy). En escritura una fecha ilegible es ErrValidation, no se sustituye.
func (uc *RegisterMovementUseCase) inputFromRequest(in dto.RegisterMovementRequest) (MovementInputDTO, error) {
	t, ok := entity.ParseMovementType(in.Type)
	if !ok {
		return MovementInputDTO{}, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrValidation, in.Type)
	}
	date := uc.clock.Today()
	if strings.TrimSpace(in.Date) != "" {
		d, err := period.ParseDate(in.Date)
		if err != nil {
			return MovementInputDTO{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		date = d
	}
	return MovementInputDTO{
		Date:      date,
		Type:      t,
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		Reference: strings.TrimSpace(in.Reference),
		Note:      strings.TrimSpace(in.Note),
	}, nil
}

func filterFromQuery(q dto.MovementQuery) (repository.MovementFilter, error) {
	q.DefaultPage()
	f := repository.MovementFilter{Limit: q.Limit}
	if strings.TrimSpace(q.Type) != "" {
		t, ok := entity.ParseMovementType(q.Type)
		if !ok {
			return f, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrValidation, q.Type)
		}
		f.Type = &t
	}
	if q.ItemID > 0 {
		id := q.ItemID
		f.ItemID = &id
	}
	for _, p := range []struct {
		raw string
		dst **time.Time
	}{{q.From, &f.From}, {q.To, &f.To}} {
		if strings.TrimSpace(p.raw) == "" {
			continue
		}
		d, err := period.ParseDate(p.raw)
		if err != nil {
			return f, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		*p.dst = &d
	}
	return f, nil
}
