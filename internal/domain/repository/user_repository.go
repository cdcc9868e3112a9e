package repository

import (
	"context"

	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrDuplicateName si el username ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByUsername devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// UpdatePassword y ToggleActive devuelven domain.ErrNotFound si el usuario no existe.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	ToggleActive(ctx context.Context, id int64) error
}
