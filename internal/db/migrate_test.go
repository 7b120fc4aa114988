package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupMigrator(t *testing.T) (*sql.DB, *Migrator) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	m := NewMigrator(db)
	require.NoError(t, m.Initialize())
	return db, m
}

func TestMigratorUpAppliesSchema(t *testing.T) {
	db, m := setupMigrator(t)

	require.NoError(t, m.Up())

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, 1)

	for _, table := range []string{"problems", "added_problems", "sync_runs"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "expected table %s to exist", table)
	}
}

func TestMigratorUpIsIdempotent(t *testing.T) {
	_, m := setupMigrator(t)

	require.NoError(t, m.Up())
	before, err := m.GetAppliedMigrations()
	require.NoError(t, err)

	require.NoError(t, m.Up())
	after, err := m.GetAppliedMigrations()
	require.NoError(t, err)

	assert.Equal(t, len(before), len(after))
}

func TestMigratorRecordsChecksums(t *testing.T) {
	_, m := setupMigrator(t)
	require.NoError(t, m.Up())

	applied, err := m.GetAppliedMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, applied)
	for _, mig := range applied {
		assert.Len(t, mig.Checksum, 64)
		assert.NotEmpty(t, mig.Description)
		assert.False(t, mig.AppliedAt.IsZero())
	}
}

func TestMigratorDown(t *testing.T) {
	db, m := setupMigrator(t)
	require.NoError(t, m.Up())

	require.NoError(t, m.Down())

	version, err := m.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='problems'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMigratorDownWithoutMigrations(t *testing.T) {
	_, m := setupMigrator(t)
	assert.Error(t, m.Down())
}
