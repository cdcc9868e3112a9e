package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

var itemColumns = []string{"id", "name", "unit", "active", "created_at"}

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool, conn o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia del catálogo.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem nuevo y rellena ID y CreatedAt.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	sql, args, err := psql.Insert("items").
		Columns("name", "unit", "active").
		Values(item.Name, item.Unit, item.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert item: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateName, item.Name)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID; (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, "get item")
}

// GetByName obtiene un ítem por nombre exacto; (nil, nil) si no existe.
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	return r.findOne(ctx, squirrel.Eq{"name": name}, "get item by name")
}

// ListActive lista los ítems activos por nombre, opcionalmente filtrados por subcadena.
func (r *ItemRepo) ListActive(ctx context.Context, search string) ([]*entity.Item, error) {
	q := psql.Select(itemColumns...).From("items").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC")
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where(squirrel.ILike{"name": "%" + escapeLike(s) + "%"})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items: %w", err)
	}
	var items []*entity.Item
	if err := pgxscan.Select(ctx, r.q, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// CountActive cuenta los ítems activos.
func (r *ItemRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE active`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Deactivate marca el ítem como inactivo.
func (r *ItemRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE items SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// EnsureNames inserta los nombres ausentes (ON CONFLICT DO NOTHING) y devuelve cuántos creó.
func (r *ItemRepo) EnsureNames(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, name := range names {
		sql, args, err := psql.Insert("items").
			Columns("name", "unit", "active").
			Values(name, entity.DefaultUnit, true).
			Suffix("ON CONFLICT (name) DO NOTHING").
			ToSql()
		if err != nil {
			return created, fmt.Errorf("build ensure item: %w", err)
		}
		tag, err := r.q.Exec(ctx, sql, args...)
		if err != nil {
			return created, fmt.Errorf("ensure item %q: %w", name, err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

func (r *ItemRepo) findOne(ctx context.Context, where squirrel.Sqlizer, op string) (*entity.Item, error) {
	sql, args, err := psql.Select(itemColumns...).From("items").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	var item entity.Item
	if err := pgxscan.Get(ctx, r.q, &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
