package repository

import (
	"context"
	"time"

	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
)

// MovementFilter filtros opcionales para ListRecent. Los punteros nil no filtran.
type MovementFilter struct {
	Type   *entity.MovementType
	ItemID *int64
	From   *time.Time
	To     *time.Time
	Limit  int
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
type MovementRepository interface {
	// Create persiste el movimiento y rellena ID y CreatedAt.
	// Devuelve domain.ErrNotFound si el ítem referenciado no existe.
	Create(ctx context.Context, movement *entity.Movement) error
	// Delete borra el movimiento; borrar un id inexistente no es error.
	Delete(ctx context.Context, id int64) error
	// ListInRange devuelve los movimientos con fecha en [start, end] (inclusive),
	// ordenados por fecha y luego id, con ItemName poblado.
	ListInRange(ctx context.Context, start, end time.Time) ([]*entity.Movement, error)
	// ListAll devuelve el libro completo; activeOnly restringe a ítems activos.
	ListAll(ctx context.Context, activeOnly bool) ([]*entity.Movement, error)
	// ListRecent devuelve los últimos movimientos (id descendente) según el filtro.
	ListRecent(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
