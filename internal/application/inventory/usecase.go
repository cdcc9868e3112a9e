// Package inventory contiene los casos de uso del libro de movimientos de lavandería.
package inventory

import (
	"context"
	"fmt"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
)

// RegisterMovementUseCase registra, borra y lista movimientos del libro.
// Los saldos no se tocan aquí: se derivan siempre del libro completo.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	clock    period.Clock
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	clock period.Clock,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		movRepo:  movRepo,
		clock:    clock,
	}
}

// Record valida y persiste un movimiento. El ítem debe existir y estar activo.
func (uc *RegisterMovementUseCase) Record(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input, err := uc.inputFromRequest(in)
	if err != nil {
		return nil, err
	}
	if input.ItemID <= 0 {
		return nil, fmt.Errorf("%w: item_id es obligatorio", domain.ErrValidation)
	}
	if !entity.ValidQuantity(input.Quantity) {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero y tener como máximo %d decimales",
			domain.ErrValidation, entity.QuantityScale)
	}

	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %d", domain.ErrNotFound, input.ItemID)
	}
	if !item.Active {
		return nil, fmt.Errorf("%w: el ítem %q está inactivo", domain.ErrValidation, item.Name)
	}

	m := input.movement()
	if err := uc.movRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	m.ItemName = item.Name
	out := dto.NewMovementResponse(m)
	return &out, nil
}

// RecordBatch registra varias líneas con la misma fecha, tipo, referencia y nota.
// Las líneas con cantidad inválida (<= 0 o más de 3 decimales) o con ítems inexistentes o inactivos se descartan y
// se cuentan; las válidas se insertan en una sola transacción.
func (uc *RegisterMovementUseCase) RecordBatch(ctx context.Context, in dto.BatchMovementRequest) (*dto.BatchResult, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: incluya al menos una línea", domain.ErrValidation)
	}
	header, err := uc.inputFromRequest(dto.RegisterMovementRequest{
		Date:      in.Date,
		Type:      in.Type,
		Reference: in.Reference,
		Note:      in.Note,
	})
	if err != nil {
		return nil, err
	}

	var res dto.BatchResult
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		res = dto.BatchResult{}
		for _, line := range in.Lines {
			if line.ItemID <= 0 || !entity.ValidQuantity(line.Quantity) {
				res.Skipped++
				continue
			}
			item, err := itemRepo.GetByID(ctx, line.ItemID)
			if err != nil {
				return err
			}
			if item == nil || !item.Active {
				res.Skipped++
				continue
			}
			m := header.movement()
			m.ItemID = line.ItemID
			m.Quantity = line.Quantity
			if err := movRepo.Create(ctx, m); err != nil {
				return fmt.Errorf("lote: línea ítem %d: %w", line.ItemID, err)
			}
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete borra un movimiento. Borrar un id inexistente no es error.
func (uc *RegisterMovementUseCase) Delete(ctx context.Context, id int64) error {
	return uc.movRepo.Delete(ctx, id)
}

// ListRecent últimos movimientos (más nuevos primero) con filtros opcionales.
func (uc *RegisterMovementUseCase) ListRecent(ctx context.Context, q dto.MovementQuery) ([]dto.MovementResponse, error) {
	filter, err := filterFromQuery(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.movRepo.ListRecent(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.NewMovementResponse(m))
	}
	return out, nil
}
