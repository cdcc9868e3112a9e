// Package testutil ofrece un almacén en memoria que implementa los puertos de
// repositorio y los runners de sesión/transacción para los tests de aplicación y HTTP.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
	"github.com/bbh-hotel/lavanderia/internal/domain/stock"
)

// ErrInjected error forzado por FailMovementCreateAt.
var ErrInjected = errors.New("testutil: fallo inyectado")

// Store almacén en memoria.
type Store struct {
	mu        sync.Mutex
	items     map[int64]*entity.Item
	movements map[int64]*entity.Movement
	users     map[int64]*entity.User
	nextID    int64

	// FailMovementCreateAt hace fallar la n-ésima llamada (1-based) a Create de movimientos.
	FailMovementCreateAt int
	movementCreates      int

	// Sesiones abiertas por Read y Run (para verificar que los reportes usan una sola).
	Reads int
	Runs  int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		items:     make(map[int64]*entity.Item),
		movements: make(map[int64]*entity.Movement),
		users:     make(map[int64]*entity.User),
	}
}

// Items repositorio de ítems sobre el almacén.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Movements repositorio de movimientos sobre el almacén.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Users repositorio de usuarios sobre el almacén.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Run ejecuta fn como una transacción: si fn devuelve error se restaura el estado previo.
func (s *Store) Run(_ context.Context, fn func(items repository.ItemRepository, movements repository.MovementRepository) error) error {
	s.mu.Lock()
	s.Runs++
	snapItems := cloneMap(s.items)
	snapMovs := cloneMap(s.movements)
	snapNext := s.nextID
	s.mu.Unlock()

	if err := fn(s.Items(), s.Movements()); err != nil {
		s.mu.Lock()
		s.items, s.movements, s.nextID = snapItems, snapMovs, snapNext
		s.mu.Unlock()
		return err
	}
	return nil
}

// Read ejecuta fn en una sesión de lectura.
func (s *Store) Read(_ context.Context, fn func(items repository.ItemRepository, movements repository.MovementRepository) error) error {
	s.mu.Lock()
	s.Reads++
	s.mu.Unlock()
	return fn(s.Items(), s.Movements())
}

// AddItem inserta un ítem directamente (semilla de tests).
func (s *Store) AddItem(name string, active bool) *entity.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	it := &entity.Item{ID: s.nextID, Name: name, Unit: entity.DefaultUnit, Active: active, CreatedAt: time.Now()}
	s.items[it.ID] = it
	c := *it
	return &c
}

// AddMovement inserta un movimiento directamente (semilla de tests). date en YYYY-MM-DD.
func (s *Store) AddMovement(date string, t entity.MovementType, itemID int64, qty string) *entity.Movement {
	d, err := period.ParseDate(date)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m := &entity.Movement{
		ID:        s.nextID,
		Date:      d,
		Type:      t,
		ItemID:    itemID,
		Quantity:  decimal.RequireFromString(qty),
		CreatedAt: time.Now(),
	}
	s.movements[m.ID] = m
	c := *m
	return &c
}

// MovementCount número de movimientos almacenados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

func cloneMap[T any](in map[int64]*T) map[int64]*T {
	out := make(map[int64]*T, len(in))
	for k, v := range in {
		c := *v
		out[k] = &c
	}
	return out
}

// ── Items ─────────────────────────────────────────────────────────────────────

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de repository.ItemRepository.
type ItemRepo struct{ s *Store }

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.Name == item.Name {
			return domain.ErrDuplicateName
		}
	}
	r.s.nextID++
	item.ID = r.s.nextID
	item.CreatedAt = time.Now()
	c := *item
	r.s.items[item.ID] = &c
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	c := *it
	return &c, nil
}

func (r *ItemRepo) GetByName(_ context.Context, name string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.Name == name {
			c := *it
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) ListActive(_ context.Context, search string) ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search = strings.ToLower(strings.TrimSpace(search))
	var out []*entity.Item
	for _, it := range r.s.items {
		if !it.Active {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		c := *it
		out = append(out, &c)
	}
	stock.SortByName(out, func(it *entity.Item) string { return it.Name })
	return out, nil
}

func (r *ItemRepo) CountActive(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, it := range r.s.items {
		if it.Active {
			n++
		}
	}
	return n, nil
}

func (r *ItemRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Active = false
	return nil
}

func (r *ItemRepo) EnsureNames(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, n := range names {
		err := r.Create(ctx, &entity.Item{Name: n, Unit: entity.DefaultUnit, Active: true})
		if errors.Is(err, domain.ErrDuplicateName) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ── Movements ─────────────────────────────────────────────────────────────────

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de repository.MovementRepository.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movementCreates++
	if r.s.FailMovementCreateAt > 0 && r.s.movementCreates == r.s.FailMovementCreateAt {
		return ErrInjected
	}
	if _, ok := r.s.items[m.ItemID]; !ok {
		return fmt.Errorf("%w: ítem %d", domain.ErrNotFound, m.ItemID)
	}
	r.s.nextID++
	m.ID = r.s.nextID
	m.CreatedAt = time.Now()
	c := *m
	r.s.movements[m.ID] = &c
	return nil
}

func (r *MovementRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.movements, id)
	return nil
}

func (r *MovementRepo) ListInRange(_ context.Context, start, end time.Time) ([]*entity.Movement, error) {
	rng := period.Range{Start: period.Truncate(start), End: period.Truncate(end)}
	out := r.collect(func(m *entity.Movement, _ *entity.Item) bool { return rng.Contains(m.Date) })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MovementRepo) ListAll(_ context.Context, activeOnly bool) ([]*entity.Movement, error) {
	out := r.collect(func(_ *entity.Movement, it *entity.Item) bool { return !activeOnly || (it != nil && it.Active) })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MovementRepo) ListRecent(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	out := r.collect(func(m *entity.Movement, _ *entity.Item) bool {
		if f.Type != nil && m.Type != *f.Type {
			return false
		}
		if f.ItemID != nil && m.ItemID != *f.ItemID {
			return false
		}
		if f.From != nil && m.Date.Before(*f.From) {
			return false
		}
		if f.To != nil && m.Date.After(*f.To) {
			return false
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MovementRepo) collect(keep func(*entity.Movement, *entity.Item) bool) []*entity.Movement {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		it := r.s.items[m.ItemID]
		if !keep(m, it) {
			continue
		}
		c := *m
		if it != nil {
			c.ItemName = it.Name
		}
		out = append(out, &c)
	}
	return out
}

// ── Users ─────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.Username == u.Username {
			return domain.ErrDuplicateName
		}
	}
	r.s.nextID++
	u.ID = r.s.nextID
	u.CreatedAt = time.Now()
	c := *u
	r.s.users[u.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *UserRepo) ToggleActive(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active = !u.Active
	return nil
}

// FixedClock reloj que siempre devuelve t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
