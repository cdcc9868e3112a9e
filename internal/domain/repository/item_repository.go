package repository

import (
	"context"

	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia del catálogo de ítems (DIP).
type ItemRepository interface {
	// Create persiste el ítem y rellena ID y CreatedAt. Devuelve domain.ErrDuplicateName
	// si ya existe un ítem con el mismo nombre.
	Create(ctx context.Context, item *entity.Item) error
	// GetByID devuelve (nil, nil) si el ítem no existe.
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	// GetByName busca por nombre exacto (activo o no); (nil, nil) si no existe.
	GetByName(ctx context.Context, name string) (*entity.Item, error)
	// ListActive lista los ítems activos ordenados por nombre; search filtra por subcadena (sin distinguir mayúsculas).
	ListActive(ctx context.Context, search string) ([]*entity.Item, error)
	CountActive(ctx context.Context) (int, error)
	// Deactivate marca el ítem como inactivo. domain.ErrNotFound si no existe.
	Deactivate(ctx context.Context, id int64) error
	// EnsureNames inserta los nombres que falten y devuelve cuántos se crearon.
	EnsureNames(ctx context.Context, names []string) (int, error)
}
