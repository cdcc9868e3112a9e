// Package legacy importa, una única vez, la base SQLite de la versión anterior
// del sistema de lavandería al almacén PostgreSQL.
package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite" // driver "sqlite"

	"github.com/bbh-hotel/lavanderia/internal/application/inventory"
	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
	"github.com/bbh-hotel/lavanderia/pkg/logger"
)

// Report resumen de la importación.
type Report struct {
	ItemsCreated     int `json:"items_created"`
	ItemsExisting    int `json:"items_existing"`
	Movements        int `json:"movements"`
	CoercedTypes     int `json:"coerced_types"`
	SkippedMovements int `json:"skipped_movements"`
	SkippedUsers     int `json:"skipped_users"`
}

// Open abre la base SQLite en solo lectura.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	return db, nil
}

// Importer copia ítems y movimientos de la base legada dentro de una sola transacción.
type Importer struct {
	src *sql.DB
	tx  inventory.TxRunner
	log *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(src *sql.DB, tx inventory.TxRunner, log *logger.Logger) *Importer {
	return &Importer{src: src, tx: tx, log: log}
}

type legacyItem struct {
	id     int64
	name   string
	unit   string
	active bool
}

type legacyMovement struct {
	id      int64
	date    string
	movType string
	itemID  int64
	qty     float64
	ref     string
	note    string
}

// Import lee la base legada y escribe todo o nada en el almacén destino.
// Los usuarios no se copian (formato de hash incompatible); solo se cuentan.
func (im *Importer) Import(ctx context.Context) (*Report, error) {
	items, err := im.readItems(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := im.readMovements(ctx)
	if err != nil {
		return nil, err
	}
	users, err := im.countUsers(ctx)
	if err != nil {
		return nil, err
	}

	var rep Report
	err = im.tx.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		rep = Report{SkippedUsers: users}
		ids := make(map[int64]int64, len(items))
		for _, li := range items {
			id, created, err := ensureItem(ctx, itemRepo, li)
			if err != nil {
				return err
			}
			ids[li.id] = id
			if created {
				rep.ItemsCreated++
			} else {
				rep.ItemsExisting++
			}
		}
		for _, lm := range movs {
			m, coerced, ok := im.convert(lm, ids)
			if !ok {
				rep.SkippedMovements++
				continue
			}
			if coerced {
				rep.CoercedTypes++
			}
			if err := movRepo.Create(ctx, m); err != nil {
				return fmt.Errorf("movimiento legado %d: %w", lm.id, err)
			}
			rep.Movements++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importar: %w", err)
	}
	im.log.Info().
		Int("items_created", rep.ItemsCreated).
		Int("items_existing", rep.ItemsExisting).
		Int("movements", rep.Movements).
		Int("coerced_types", rep.CoercedTypes).
		Int("skipped_movements", rep.SkippedMovements).
		Int("skipped_users", rep.SkippedUsers).
		Msg("importación legada completada")
	return &rep, nil
}

// ensureItem crea el ítem o reutiliza el existente con el mismo nombre.
func ensureItem(ctx context.Context, repo repository.ItemRepository, li legacyItem) (int64, bool, error) {
	item := &entity.Item{Name: li.name, Unit: li.unit, Active: true}
	err := repo.Create(ctx, item)
	if errors.Is(err, domain.ErrDuplicateName) {
		existing, err := repo.GetByName(ctx, li.name)
		if err != nil {
			return 0, false, err
		}
		if existing == nil {
			return 0, false, fmt.Errorf("ítem %q: %w", li.name, domain.ErrNotFound)
		}
		return existing.ID, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("ítem legado %q: %w", li.name, err)
	}
	if !li.active {
		if err := repo.Deactivate(ctx, item.ID); err != nil {
			return 0, false, err
		}
	}
	return item.ID, true, nil
}

// convert traduce una fila legada. ok=false si la fila no se puede importar.
func (im *Importer) convert(lm legacyMovement, ids map[int64]int64) (*entity.Movement, bool, bool) {
	itemID, found := ids[lm.itemID]
	if !found {
		im.log.Warn().Int64("legacy_id", lm.id).Int64("item_id", lm.itemID).Msg("movimiento legado sin ítem; omitido")
		return nil, false, false
	}
	date, err := period.ParseDate(firstN(lm.date, 10))
	if err != nil {
		im.log.Warn().Int64("legacy_id", lm.id).Str("date", lm.date).Msg("fecha legada ilegible; omitido")
		return nil, false, false
	}
	qty := decimal.NewFromFloat(lm.qty)
	if !qty.IsPositive() {
		im.log.Warn().Int64("legacy_id", lm.id).Str("qty", qty.String()).Msg("cantidad legada no positiva; omitido")
		return nil, false, false
	}
	t, coerced := NormalizeType(lm.movType)
	if coerced {
		im.log.Warn().Int64("legacy_id", lm.id).Str("type", lm.movType).Msg("tipo legado desconocido; importado como issued")
	}
	return &entity.Movement{
		Date:      date,
		Type:      t,
		ItemID:    itemID,
		Quantity:  qty,
		Reference: lm.ref,
		Note:      lm.note,
	}, coerced, true
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeType recorta, pasa a minúsculas y quita acentos antes de buscar el tipo.
// Un tipo desconocido se convierte en issued (coerced=true), como hacía la versión anterior.
func NormalizeType(raw string) (t entity.MovementType, coerced bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if plain, _, err := transform.String(stripMarks, s); err == nil {
		s = plain
	}
	if mt, ok := entity.ParseMovementType(s); ok {
		return mt, false
	}
	return entity.MovementIssued, true
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// ── Lectura SQLite ────────────────────────────────────────────────────────────

func (im *Importer) readItems(ctx context.Context) ([]legacyItem, error) {
	rows, err := im.src.QueryContext(ctx, `SELECT id, name, unit, active FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("leer ítems legados: %w", err)
	}
	defer rows.Close()
	var out []legacyItem
	for rows.Next() {
		var (
			it     legacyItem
			unit   sql.NullString
			active sql.NullInt64
		)
		if err := rows.Scan(&it.id, &it.name, &unit, &active); err != nil {
			return nil, fmt.Errorf("scan ítem legado: %w", err)
		}
		it.name = strings.TrimSpace(it.name)
		it.unit = strings.TrimSpace(unit.String)
		if it.unit == "" {
			it.unit = entity.DefaultUnit
		}
		it.active = !active.Valid || active.Int64 != 0
		out = append(out, it)
	}
	return out, rows.Err()
}

func (im *Importer) readMovements(ctx context.Context) ([]legacyMovement, error) {
	rows, err := im.src.QueryContext(ctx,
		`SELECT id, mov_date, mov_type, item_id, qty, ref, note FROM movements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("leer movimientos legados: %w", err)
	}
	defer rows.Close()
	var out []legacyMovement
	for rows.Next() {
		var (
			m         legacyMovement
			ref, note sql.NullString
		)
		if err := rows.Scan(&m.id, &m.date, &m.movType, &m.itemID, &m.qty, &ref, &note); err != nil {
			return nil, fmt.Errorf("scan movimiento legado: %w", err)
		}
		m.ref = strings.TrimSpace(ref.String)
		m.note = strings.TrimSpace(note.String)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (im *Importer) countUsers(ctx context.Context) (int, error) {
	var n int
	if err := im.src.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("contar usuarios legados: %w", err)
	}
	return n, nil
}
