package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/bbh-hotel/lavanderia/internal/application/analytics"
	"github.com/bbh-hotel/lavanderia/internal/application/auth"
	"github.com/bbh-hotel/lavanderia/internal/application/catalog"
	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/application/inventory"
	"github.com/bbh-hotel/lavanderia/internal/application/usecase"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/infrastructure/export"
	"github.com/bbh-hotel/lavanderia/internal/infrastructure/pdf"
	"github.com/bbh-hotel/lavanderia/internal/testutil"
)

type testAPI struct {
	app   *fiber.App
	store *testutil.Store
	admin string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := testutil.NewStore()
	clock := period.Clock{Now: testutil.FixedClock(time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)), Location: time.UTC}
	reports := appanalytics.NewReportUseCase(store, clock)
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "test"})
	_, err := authUC.EnsureAdmin(context.Background(), "1234")
	require.NoError(t, err)

	header := appanalytics.ManifestHeader{Hotel: "BBH", Responsible: "Governança"}
	exports := appanalytics.NewExportUseCase(reports, export.NewCSVEncoder(), pdf.NewMarotoManifestGenerator(), header)

	app := fiber.New()
	Router(app, RouterDeps{
		CatalogUC:        catalog.NewCatalogUseCase(store.Items()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, store.Items(), store.Movements(), clock),
		Reports:          reports,
		Exports:          exports,
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(store.Users()),
		JWTSecret:        testSecret,
	})
	api := &testAPI{app: app, store: store}
	api.admin = api.login(t, "admin", "1234")
	return api
}

func (a *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := a.do(t, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func (a *testAPI) do(t *testing.T, method, path, tok string, body any) *nethttp.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if tok != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLogin_WrongPassword(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "x"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = api.do(t, fiber.MethodGet, "/api/items", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestItemsAndMovements_EndToEnd(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, fiber.MethodPost, "/api/items", api.admin, dto.CreateItemRequest{Name: "LENÇOL CASAL"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var item dto.ItemResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))

	resp = api.do(t, fiber.MethodPost, "/api/items", api.admin, dto.CreateItemRequest{Name: "LENÇOL CASAL"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	for _, m := range []dto.RegisterMovementRequest{
		{Date: "2025-06-18", Type: "received", ItemID: item.ID, Quantity: decimal.NewFromInt(10)},
		{Date: "2025-06-18", Type: "sent", ItemID: item.ID, Quantity: decimal.NewFromInt(4)},
	} {
		resp = api.do(t, fiber.MethodPost, "/api/movements", api.admin, m)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp = api.do(t, fiber.MethodPost, "/api/movements", api.admin,
		dto.RegisterMovementRequest{Type: "sent", ItemID: item.ID, Quantity: decimal.Zero})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = api.do(t, fiber.MethodPost, "/api/movements", api.admin,
		dto.RegisterMovementRequest{Type: "sent", ItemID: 999, Quantity: decimal.NewFromInt(1)})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = api.do(t, fiber.MethodGet, "/api/reports/stock", api.admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stock []dto.StockLineDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stock))
	require.Len(t, stock, 1)
	assert.True(t, decimal.NewFromInt(6).Equal(stock[0].AtHotel))
	assert.True(t, decimal.NewFromInt(4).Equal(stock[0].AtLaundry))
	assert.True(t, decimal.NewFromInt(10).Equal(stock[0].Total))

	resp = api.do(t, fiber.MethodGet, "/api/movements?type=sent", api.admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var movs []dto.MovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&movs))
	require.Len(t, movs, 1)
	assert.Equal(t, "LENÇOL CASAL", movs[0].ItemName)

	resp = api.do(t, fiber.MethodDelete, "/api/movements/"+itoa(movs[0].ID), api.admin, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = api.do(t, fiber.MethodDelete, "/api/movements/"+itoa(movs[0].ID), api.admin, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = api.do(t, fiber.MethodDelete, "/api/movements/abc", api.admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExports_AttachmentHeaders(t *testing.T) {
	api := newTestAPI(t)
	it := api.store.AddItem("TOALHA BANHO", true)
	api.store.AddMovement("2025-06-18", entity.MovementSent, it.ID, "12")

	resp := api.do(t, fiber.MethodGet, "/api/exports/manifest.csv?date=2025-06-18", api.admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="romaneio_2025-06-18.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TOALHA BANHO")

	resp = api.do(t, fiber.MethodGet, "/api/exports/manifest.pdf?date=2025-06-18", api.admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, appanalytics.ContentTypePDF, resp.Header.Get(fiber.HeaderContentType))
	body, _ = io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF-"))

	// Fecha ilegible en lectura: se usa hoy.
	resp = api.do(t, fiber.MethodGet, "/api/exports/manifest.csv?date=18/06/2025", api.admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="romaneio_2025-06-18.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))
}

func TestUsers_AdminOnly(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, fiber.MethodPost, "/api/users", api.admin, dto.CreateUserRequest{Username: "recepcao", Password: "abcd"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var u dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&u))

	staff := api.login(t, "recepcao", "abcd")
	resp = api.do(t, fiber.MethodGet, "/api/users", staff, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = api.do(t, fiber.MethodGet, "/api/dashboard", staff, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = api.do(t, fiber.MethodPost, "/api/users/"+itoa(u.ID)+"/toggle", api.admin, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = api.do(t, fiber.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "recepcao", Password: "abcd"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
