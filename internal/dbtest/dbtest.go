// Package dbtest opens migrated throwaway SQLite databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/database"
	"github.com/iliyamo/stagebook/internal/migrate"
)

// Open returns a fully migrated SQLite database in t.TempDir().  It is
// closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "stagebook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = migrate.Up(context.Background(), db, database.SQLite)
	require.NoError(t, err)
	return db
}

// InsertVenue adds a minimal venue and returns its id.
func InsertVenue(t *testing.T, db *sql.DB, name, city, state string) uint64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO venue (name, city, state, address) VALUES (?, ?, ?, ?)`,
		name, city, state, "1 Main Street")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

// InsertArtist adds a minimal artist and returns its id.
func InsertArtist(t *testing.T, db *sql.DB, name, city, state string) uint64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO artist (name, city, state) VALUES (?, ?, ?)`, name, city, state)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

// InsertShow books artistID at venueID and returns the show id.
func InsertShow(t *testing.T, db *sql.DB, venueID, artistID uint64, start time.Time) uint64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO `show` (start_time, venue_id, artist_id) VALUES (?, ?, ?)",
		start.UTC(), venueID, artistID)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

// Count returns the number of rows in table.
func Count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM `"+table+"`").Scan(&n))
	return n
}
