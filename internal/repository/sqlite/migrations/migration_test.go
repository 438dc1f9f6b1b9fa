package migrations

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_FreshDatabase(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, RunMigrations(db))

	var versions []int
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var v int
		require.NoError(t, rows.Scan(&v))
		versions = append(versions, v)
	}
	assert.Equal(t, []int{1, 2}, versions)

	_, err = db.Exec("INSERT INTO subscribers (user_id, created_at) VALUES (1, '2026-10-19T10:00:00Z')")
	assert.NoError(t, err)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestNormalizeSubscriberTimestamps(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, createMigrationsTable(db))
	_, err := db.Exec(string(mustRead(t, "000001_create_subscribers.up.sql")))
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO migrations (version) VALUES (1)")
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO subscribers (user_id, created_at) VALUES
		(1, '2026-10-19 08:15:00'),
		(2, '2026-10-19T08:15:00Z'),
		(3, 'not a time')
	`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db))

	got := map[int64]string{}
	rows, err := db.Query("SELECT user_id, created_at FROM subscribers")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var id int64
		var at string
		require.NoError(t, rows.Scan(&id, &at))
		got[id] = at
	}

	assert.Equal(t, "2026-10-19T08:15:00Z", got[1])
	assert.Equal(t, "2026-10-19T08:15:00Z", got[2])
	assert.Equal(t, "not a time", got[3])
}

func TestRunMigrations_FailedMigrationIsRetried(t *testing.T) {
	db := openMemory(t)

	attempts := 0
	RegisterGoMigration(99, func(tx *sql.Tx) error {
		attempts++
		if attempts == 1 {
			return errors.New("database is locked")
		}
		_, err := tx.Exec("CREATE TABLE retried (id INTEGER PRIMARY KEY)")
		return err
	}, nil)
	t.Cleanup(func() { delete(goMigrations, 99) })

	err := RunMigrations(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply migration 99")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations WHERE version = 99").Scan(&count))
	assert.Zero(t, count)

	require.NoError(t, RunMigrations(db))
	assert.Equal(t, 2, attempts)

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 3, count)
	_, err = db.Exec("INSERT INTO retried (id) VALUES (1)")
	assert.NoError(t, err)
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, extractVersion("000001_create_subscribers.up.sql"))
	assert.Equal(t, 0, extractVersion("readme.sql"))
}

func mustRead(t *testing.T, name string) []byte {
	t.Helper()
	b, err := migrationsFS.ReadFile(name)
	require.NoError(t, err)
	return b
}
