// Package catalog contiene los casos de uso del catálogo de ítems de lencería.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
)

// DefaultItems catálogo con el que arranca el hotel (pre-carga de la pantalla de movimientos).
var DefaultItems = []string{
	"COLCHA CASAL", "COLCHA SOLTEIRO", "CORTINA", "FRONHA",
	"LENÇOL CASAL", "LENÇOL SOLTEIRO", "MANTA CASAL", "MANTA SOLTEIRO",
	"PESEIRA CASAL", "PESEIRA SOLTEIRO", "PILLOW TOP", "PISO",
	"PROTETOR CASAL", "PROTETOR SOLTEIRO", "PROTETOR TRAVESSEIRO",
	"REDE", "ROLO", "ROUPÃO", "SAIOTE CASAL", "SAIOTE SOLTEIRO",
	"TOALHA BANHO", "TOALHA PISCINA", "TOALHA ROSTO",
}

// ExtraItems ítems usados antes de que existiera el catálogo por defecto.
var ExtraItems = []string{"TRAVESSEIRO", "VIP COLCHA", "VIP FRONHA", "VIP LENÇOL", "BLACK OUT"}

// CatalogUseCase alta, baja lógica y listado de ítems.
type CatalogUseCase struct {
	repo repository.ItemRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.ItemRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// Add registra un ítem nuevo. El nombre se recorta; vacío es ErrValidation y un
// nombre ya existente es ErrDuplicateName (nunca se sobrescribe).
func (uc *CatalogUseCase) Add(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del ítem es obligatorio", domain.ErrValidation)
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}
	item := &entity.Item{Name: name, Unit: unit, Active: true}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Deactivate baja lógica. ErrNotFound si el ítem no existe.
func (uc *CatalogUseCase) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id de ítem inválido", domain.ErrValidation)
	}
	return uc.repo.Deactivate(ctx, id)
}

// ListActive ítems activos por nombre; q filtra por subcadena.
func (uc *CatalogUseCase) ListActive(ctx context.Context, q string) ([]dto.ItemResponse, error) {
	items, err := uc.repo.ListActive(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// SeedDefaults inserta los ítems por defecto que falten. Idempotente.
func (uc *CatalogUseCase) SeedDefaults(ctx context.Context) (*dto.SeedResult, error) {
	names := make([]string, 0, len(DefaultItems)+len(ExtraItems))
	names = append(names, DefaultItems...)
	names = append(names, ExtraItems...)
	n, err := uc.repo.EnsureNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("catalog: seed: %w", err)
	}
	return &dto.SeedResult{Created: n}, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Unit:      it.Unit,
		Active:    it.Active,
		CreatedAt: it.CreatedAt,
	}
}
