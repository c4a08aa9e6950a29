package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySchema_EmptyPathSkips(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ApplySchema(context.Background(), sqlx.NewDb(db, "postgres"), ""))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySchema_ExecutesFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE IF NOT EXISTS t (id INT);"), 0o600))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS t`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, ApplySchema(context.Background(), sqlx.NewDb(db, "postgres"), path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySchema_MissingFile(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = ApplySchema(context.Background(), sqlx.NewDb(db, "postgres"), filepath.Join(t.TempDir(), "missing.sql"))
	assert.ErrorContains(t, err, "could not read schema file")
}

func TestSchemaFileParses(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "db", "schema.sql"))
	require.NoError(t, err)
	for _, table := range []string{"clients", "reservations", "invoices", "expenses"} {
		assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
