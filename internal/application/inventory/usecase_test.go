package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbh-hotel/lavanderia/internal/application/dto"
	"github.com/bbh-hotel/lavanderia/internal/application/inventory"
	"github.com/bbh-hotel/lavanderia/internal/domain"
	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/domain/period"
	"github.com/bbh-hotel/lavanderia/internal/testutil"
)

var now = time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)

func newUseCase(store *testutil.Store) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(store, store.Items(), store.Movements(),
		period.Clock{Now: testutil.FixedClock(now)})
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecord_DefaultsDateToToday(t *testing.T) {
	store := testutil.NewStore()
	it := store.AddItem("TOALHA BANHO", true)
	uc := newUseCase(store)

	got, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		Type: "sent", ItemID: it.ID, Quantity: qty("4"), Reference: " R-1 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-18", got.Date)
	assert.Equal(t, "sent", got.Type)
	assert.Equal(t, "TOALHA BANHO", got.ItemName)
	assert.Equal(t, "R-1", got.Reference)
	assert.Equal(t, 1, store.MovementCount())
}

func TestRecord_Validation(t *testing.T) {
	store := testutil.NewStore()
	it := store.AddItem("FRONHA", true)
	off := store.AddItem("CORTINA", false)
	uc := newUseCase(store)
	ctx := context.Background()

	tests := []struct {
		name string
		in   dto.RegisterMovementRequest
		want error
	}{
		{"cantidad cero", dto.RegisterMovementRequest{Type: "sent", ItemID: it.ID, Quantity: qty("0")}, domain.ErrValidation},
		{"cantidad negativa", dto.RegisterMovementRequest{Type: "sent", ItemID: it.ID, Quantity: qty("-2")}, domain.ErrValidation},
		{"cantidad redondea a cero", dto.RegisterMovementRequest{Type: "sent", ItemID: it.ID, Quantity: qty("0.0004")}, domain.ErrValidation},
		{"cuatro decimales", dto.RegisterMovementRequest{Type: "sent", ItemID: it.ID, Quantity: qty("1.2345")}, domain.ErrValidation},
		{"tipo desconocido", dto.RegisterMovementRequest{Type: "transfer", ItemID: it.ID, Quantity: qty("1")}, domain.ErrValidation},
		{"sin ítem", dto.RegisterMovementRequest{Type: "sent", Quantity: qty("1")}, domain.ErrValidation},
		{"ítem inexistente", dto.RegisterMovementRequest{Type: "sent", ItemID: 999, Quantity: qty("1")}, domain.ErrNotFound},
		{"ítem inactivo", dto.RegisterMovementRequest{Type: "sent", ItemID: off.ID, Quantity: qty("1")}, domain.ErrValidation},
		{"fecha ilegible", dto.RegisterMovementRequest{Date: "18/06/2025", Type: "sent", ItemID: it.ID, Quantity: qty("1")}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Record(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
	assert.Equal(t, 0, store.MovementCount(), "nada inválido debe persistirse")
}

func TestRecord_ThreeDecimalsStoredExactly(t *testing.T) {
	store := testutil.NewStore()
	it := store.AddItem("PISO", true)
	uc := newUseCase(store)

	got, err := uc.Record(context.Background(), dto.RegisterMovementRequest{Type: "received", ItemID: it.ID, Quantity: qty("1.235")})
	require.NoError(t, err)
	assert.True(t, qty("1.235").Equal(got.Quantity))

	// Ceros a la derecha no cuentan como decimales extra.
	_, err = uc.Record(context.Background(), dto.RegisterMovementRequest{Type: "received", ItemID: it.ID, Quantity: qty("2.50000")})
	require.NoError(t, err)
	assert.Equal(t, 2, store.MovementCount())
}

func TestRecordBatch_SkipsQuantitiesBeyondScale(t *testing.T) {
	store := testutil.NewStore()
	a := store.AddItem("FRONHA", true)
	uc := newUseCase(store)

	res, err := uc.RecordBatch(context.Background(), dto.BatchMovementRequest{
		Type: "sent",
		Lines: []dto.BatchLine{
			{ItemID: a.ID, Quantity: qty("0.0004")},
			{ItemID: a.ID, Quantity: qty("1.2345")},
			{ItemID: a.ID, Quantity: qty("3")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 1, store.MovementCount())
}

func TestRecord_MalformedDateKeepsCause(t *testing.T) {
	store := testutil.NewStore()
	it := store.AddItem("FRONHA", true)
	_, err := newUseCase(store).Record(context.Background(), dto.RegisterMovementRequest{
		Date: "2025-02-30", Type: "lost", ItemID: it.ID, Quantity: qty("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
}

func TestRecordBatch_SkipsInvalidLines(t *testing.T) {
	store := testutil.NewStore()
	a := store.AddItem("FRONHA", true)
	b := store.AddItem("TOALHA ROSTO", true)
	off := store.AddItem("BLACK OUT", false)
	uc := newUseCase(store)

	res, err := uc.RecordBatch(context.Background(), dto.BatchMovementRequest{
		Date: "2025-06-17",
		Type: "envio",
		Lines: []dto.BatchLine{
			{ItemID: a.ID, Quantity: qty("10")},
			{ItemID: b.ID, Quantity: qty("0")},
			{ItemID: off.ID, Quantity: qty("3")},
			{ItemID: 4242, Quantity: qty("3")},
			{ItemID: b.ID, Quantity: qty("2.5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 3, res.Skipped)

	list, err := uc.ListRecent(context.Background(), dto.MovementQuery{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, m := range list {
		assert.Equal(t, "2025-06-17", m.Date)
		assert.Equal(t, string(entity.MovementSent), m.Type)
	}
	assert.Equal(t, 1, store.Runs)
}

func TestRecordBatch_RollsBackOnStoreFailure(t *testing.T) {
	store := testutil.NewStore()
	a := store.AddItem("FRONHA", true)
	store.FailMovementCreateAt = 2
	uc := newUseCase(store)

	_, err := uc.RecordBatch(context.Background(), dto.BatchMovementRequest{
		Type:  "returned",
		Lines: []dto.BatchLine{{ItemID: a.ID, Quantity: qty("1")}, {ItemID: a.ID, Quantity: qty("2")}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, testutil.ErrInjected))
	assert.Equal(t, 0, store.MovementCount(), "la primera línea no debe quedar persistida")
}

func TestRecordBatch_NoLinesOrBadType(t *testing.T) {
	uc := newUseCase(testutil.NewStore())
	ctx := context.Background()

	_, err := uc.RecordBatch(ctx, dto.BatchMovementRequest{Type: "sent"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = uc.RecordBatch(ctx, dto.BatchMovementRequest{Type: "x", Lines: []dto.BatchLine{{ItemID: 1, Quantity: qty("1")}}})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestDelete_IsIdempotent(t *testing.T) {
	store := testutil.NewStore()
	it := store.AddItem("FRONHA", true)
	m := store.AddMovement("2025-06-18", entity.MovementReceived, it.ID, "5")
	uc := newUseCase(store)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, m.ID))
	require.NoError(t, uc.Delete(ctx, m.ID))
	require.NoError(t, uc.Delete(ctx, 123456))
	assert.Equal(t, 0, store.MovementCount())
}

func TestListRecent_FiltersAndLimit(t *testing.T) {
	store := testutil.NewStore()
	a := store.AddItem("FRONHA", true)
	b := store.AddItem("ROUPÃO", true)
	for i := 0; i < 60; i++ {
		store.AddMovement("2025-06-01", entity.MovementSent, a.ID, "1")
	}
	store.AddMovement("2025-06-10", entity.MovementLost, b.ID, "1")
	last := store.AddMovement("2025-06-12", entity.MovementReturned, a.ID, "1")
	uc := newUseCase(store)
	ctx := context.Background()

	all, err := uc.ListRecent(ctx, dto.MovementQuery{})
	require.NoError(t, err)
	assert.Len(t, all, dto.DefaultListLimit)
	assert.Equal(t, last.ID, all[0].ID, "los más nuevos primero")

	lost, err := uc.ListRecent(ctx, dto.MovementQuery{Type: "perda"})
	require.NoError(t, err)
	require.Len(t, lost, 1)
	assert.Equal(t, "ROUPÃO", lost[0].ItemName)

	window, err := uc.ListRecent(ctx, dto.MovementQuery{From: "2025-06-05", To: "2025-06-30", ItemID: a.ID})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, last.ID, window[0].ID)

	_, err = uc.ListRecent(ctx, dto.MovementQuery{From: "ayer"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
