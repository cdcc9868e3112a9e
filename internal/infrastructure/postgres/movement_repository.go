package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// Límites de ListRecent.
const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL (usable con pool, conn o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia del libro de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// selectMovements columnas con alias a los campos de entity.Movement (scany mapea snake_case).
func selectMovements() squirrel.SelectBuilder {
	return psql.Select(
		"m.id", "m.mov_date AS date", "m.mov_type AS type", "m.item_id", "m.quantity",
		"m.reference", "m.note", "m.created_at", "i.name AS item_name",
	).From("movements m").Join("items i ON i.id = m.item_id")
}

// Create persiste el movimiento. Ítem inexistente (FK) es domain.ErrNotFound;
// un CHECK rechazado (cantidad que redondea a cero) es domain.ErrValidation.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	sql, args, err := psql.Insert("movements").
		Columns("mov_date", "mov_type", "item_id", "quantity", "reference", "note").
		Values(m.Date, string(m.Type), m.ItemID, m.Quantity, m.Reference, m.Note).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert movement: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: ítem %d", domain.ErrNotFound, m.ItemID)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: cantidad %s", domain.ErrValidation, m.Quantity)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// Delete borra el movimiento; un id inexistente no es error.
func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// ListInRange movimientos con fecha en [start, end], por fecha y luego id.
func (r *MovementRepo) ListInRange(ctx context.Context, start, end time.Time) ([]*entity.Movement, error) {
	q := selectMovements().
		Where(squirrel.GtOrEq{"m.mov_date": start}).
		Where(squirrel.LtOrEq{"m.mov_date": end}).
		OrderBy("m.mov_date ASC", "m.id ASC")
	return r.selectAll(ctx, q, "list movements in range")
}

// ListAll libro completo; activeOnly excluye movimientos de ítems desactivados.
func (r *MovementRepo) ListAll(ctx context.Context, activeOnly bool) ([]*entity.Movement, error) {
	q := selectMovements().OrderBy("m.mov_date ASC", "m.id ASC")
	if activeOnly {
		q = q.Where(squirrel.Eq{"i.active": true})
	}
	return r.selectAll(ctx, q, "list movements")
}

// ListRecent últimos movimientos (id descendente) según filtro.
func (r *MovementRepo) ListRecent(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	q := selectMovements().OrderBy("m.id DESC")
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"m.mov_type": string(*f.Type)})
	}
	if f.ItemID != nil {
		q = q.Where(squirrel.Eq{"m.item_id": *f.ItemID})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"m.mov_date": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"m.mov_date": *f.To})
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return r.selectAll(ctx, q.Limit(uint64(limit)), "list recent movements")
}

func (r *MovementRepo) selectAll(ctx context.Context, q squirrel.SelectBuilder, op string) ([]*entity.Movement, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var list []*entity.Movement
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
