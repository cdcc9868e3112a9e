package legacy

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbh-hotel/lavanderia/internal/domain/entity"
	"github.com/bbh-hotel/lavanderia/internal/testutil"
	"github.com/bbh-hotel/lavanderia/pkg/logger"
)

const legacySchema = `
CREATE TABLE items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT UNIQUE NOT NULL,
    unit TEXT DEFAULT 'un',
    active INTEGER DEFAULT 1,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE movements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    mov_date TEXT NOT NULL,
    mov_type TEXT NOT NULL,
    item_id INTEGER NOT NULL,
    qty REAL NOT NULL,
    ref TEXT,
    note TEXT,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    active INTEGER DEFAULT 1,
    created_at TEXT DEFAULT CURRENT_TIMESTAMP
);`

// legacyDB crea un archivo SQLite con el esquema anterior y algunos datos.
func legacyDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lavanderia.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(legacySchema)
	require.NoError(t, err)
	stmts := []string{
		`INSERT INTO items (id, name, unit, active) VALUES (1, 'TOALHA BANHO', 'un', 1)`,
		`INSERT INTO items (id, name, unit, active) VALUES (2, 'FRONHA', NULL, 0)`,
		`INSERT INTO movements (mov_date, mov_type, item_id, qty, ref) VALUES ('2025-06-01', 'entrada', 1, 10, 'NF-1')`,
		`INSERT INTO movements (mov_date, mov_type, item_id, qty) VALUES ('2025-06-02 08:30:00', ' Envio ', 1, 4)`,
		`INSERT INTO movements (mov_date, mov_type, item_id, qty, note) VALUES ('2025-06-03', 'RETORNO', 1, 2, 'ok')`,
		`INSERT INTO movements (mov_date, mov_type, item_id, qty) VALUES ('2025-06-03', 'saída', 2, 1)`,
		`INSERT INTO movements (mov_date, mov_type, item_id, qty) VALUES ('2025-06-04', 'conserto', 1, 1)`,
		`INSERT INTO movements (mov_date, mov_type, item_id, qty) VALUES ('2025-06-04', 'entrada', 99, 5)`,
		`INSERT INTO movements (mov_date, mov_type, item_id, qty) VALUES ('2025-06-04', 'entrada', 1, 0)`,
		`INSERT INTO users (username, password) VALUES ('admin', 'pbkdf2:sha256:600000$abc$def')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
	return path
}

func TestNormalizeType(t *testing.T) {
	cases := []struct {
		raw     string
		want    entity.MovementType
		coerced bool
	}{
		{"entrada", entity.MovementReceived, false},
		{" SAÍDA ", entity.MovementIssued, false},
		{"Envio", entity.MovementSent, false},
		{"envío", entity.MovementSent, false},
		{"retorno", entity.MovementReturned, false},
		{"perda", entity.MovementLost, false},
		{"returned", entity.MovementReturned, false},
		{"conserto", entity.MovementIssued, true},
		{"", entity.MovementIssued, true},
	}
	for _, tc := range cases {
		got, coerced := NormalizeType(tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
		assert.Equal(t, tc.coerced, coerced, tc.raw)
	}
}

func TestImport(t *testing.T) {
	src, err := Open(legacyDB(t))
	require.NoError(t, err)
	defer src.Close()

	store := testutil.NewStore()
	store.AddItem("TOALHA BANHO", true)

	rep, err := NewImporter(src, store, logger.Nop()).Import(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.ItemsCreated)
	assert.Equal(t, 1, rep.ItemsExisting)
	assert.Equal(t, 5, rep.Movements)
	assert.Equal(t, 1, rep.CoercedTypes)
	assert.Equal(t, 2, rep.SkippedMovements)
	assert.Equal(t, 1, rep.SkippedUsers)
	assert.Equal(t, 5, store.MovementCount())

	fronha, err := store.Items().GetByName(context.Background(), "FRONHA")
	require.NoError(t, err)
	require.NotNil(t, fronha)
	assert.False(t, fronha.Active)
	assert.Equal(t, entity.DefaultUnit, fronha.Unit)

	movs, err := store.Movements().ListAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, movs, 5)
	assert.Equal(t, entity.MovementReceived, movs[0].Type)
	assert.Equal(t, "NF-1", movs[0].Reference)
	assert.Equal(t, entity.MovementSent, movs[1].Type)
	assert.Equal(t, "2025-06-02", movs[1].Date.Format("2006-01-02"))
}

func TestImport_RollsBackOnStoreFailure(t *testing.T) {
	src, err := Open(legacyDB(t))
	require.NoError(t, err)
	defer src.Close()

	store := testutil.NewStore()
	store.FailMovementCreateAt = 2

	_, err = NewImporter(src, store, logger.Nop()).Import(context.Background())
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Zero(t, store.MovementCount())
	items, err := store.Items().ListActive(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}
