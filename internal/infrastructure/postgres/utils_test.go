package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert item: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
	assert.False(t, isUniqueViolation(nil))

	check := fmt.Errorf("insert movement: %w", &pgconn.PgError{Code: "23514"})
	assert.True(t, isCheckViolation(check))
	assert.False(t, isCheckViolation(fk))
}

func TestMigrationURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/lav?sslmode=disable", migrationURL("postgres://u:p@db:5432/lav?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/lav", migrationURL("postgresql://u@db/lav"))
	assert.Equal(t, "pgx5://x", migrationURL("pgx5://x"))
}
