package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbh-hotel/lavanderia/internal/application/auth"
	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin; el control de rol lo hace el middleware).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List usuarios ordenados por nombre.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario activo. Username repetido es ErrDuplicateName.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: el usuario es obligatorio", domain.ErrValidation)
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	switch role {
	case "":
		role = entity.RoleStaff
	case entity.RoleAdmin, entity.RoleStaff:
	default:
		return nil, fmt.Errorf("%w: rol %q", domain.ErrValidation, in.Role)
	}
	hash, err := auth.HashPassword(strings.TrimSpace(in.Password))
	if err != nil {
		return nil, err
	}
	user := &entity.User{Username: username, PasswordHash: hash, Role: role, Active: true}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// ResetPassword reemplaza la contraseña del usuario id.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id int64, in dto.ResetPasswordRequest) error {
	hash, err := auth.HashPassword(strings.TrimSpace(in.Password))
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, id, hash)
}

// ToggleActive activa o desactiva al usuario id. El admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) ToggleActive(ctx context.Context, actorID, id int64) (*dto.UserResponse, error) {
	if actorID == id {
		return nil, fmt.Errorf("%w: no puede desactivar su propio usuario", domain.ErrValidation)
	}
	if err := uc.repo.ToggleActive(ctx, id); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}
