package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbh-hotel/lavanderia/internal/application/auth"
	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/application/usecase"
	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/testutil"
)

func TestCreate_DefaultsToStaffAndRejectsDuplicates(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "recepcao", Password: "abcd"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, u.Role)
	assert.True(t, u.Active)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "recepcao", Password: "efgh"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "x", Password: "abcd", Role: "root"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: " ", Password: "abcd"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestResetPassword_AllowsNewLogin(t *testing.T) {
	store := testutil.NewStore()
	users := usecase.NewUserUseCase(store.Users())
	login := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: "s", ExpMinutes: 5})
	ctx := context.Background()

	u, err := users.Create(ctx, dto.CreateUserRequest{Username: "governanca", Password: "velha"})
	require.NoError(t, err)
	require.NoError(t, users.ResetPassword(ctx, u.ID, dto.ResetPasswordRequest{Password: "nova-senha"}))

	_, err = login.Login(ctx, dto.LoginRequest{Username: "governanca", Password: "velha"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	_, err = login.Login(ctx, dto.LoginRequest{Username: "governanca", Password: "nova-senha"})
	assert.NoError(t, err)

	assert.True(t, errors.Is(users.ResetPassword(ctx, 999, dto.ResetPasswordRequest{Password: "abcd"}), domain.ErrNotFound))
	assert.True(t, errors.Is(users.ResetPassword(ctx, u.ID, dto.ResetPasswordRequest{Password: ""}), domain.ErrValidation))
}

func TestToggleActive(t *testing.T) {
	store := testutil.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()
	admin, err := uc.Create(ctx, dto.CreateUserRequest{Username: "admin", Password: "1234", Role: "admin"})
	require.NoError(t, err)
	staff, err := uc.Create(ctx, dto.CreateUserRequest{Username: "lavanderia", Password: "1234"})
	require.NoError(t, err)

	got, err := uc.ToggleActive(ctx, admin.ID, staff.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	got, err = uc.ToggleActive(ctx, admin.ID, staff.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	_, err = uc.ToggleActive(ctx, admin.ID, admin.ID)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = uc.ToggleActive(ctx, admin.ID, 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
