package migrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/database"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestLoad_BothDialectsMatch(t *testing.T) {
	my, err := Load("mysql")
	require.NoError(t, err)
	lite, err := Load("sqlite3")
	require.NoError(t, err)

	require.Len(t, my, 7)
	require.Len(t, lite, len(my))
	for i := range my {
		assert.Equal(t, i+1, my[i].Version)
		assert.Equal(t, my[i].Name, lite[i].Name)
	}
	assert.Equal(t, "add_venue_missing_fields", my[2].Name)
}

func TestLoad_UnknownDialect(t *testing.T) {
	_, err := Load("oracle")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestParseFileName(t *testing.T) {
	v, name, dir, err := parseFileName("0005_add_venue_genres.down.sql")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, "add_venue_genres", name)
	assert.Equal(t, "down", dir)

	_, _, _, err = parseFileName("README.md")
	assert.Error(t, err)
	_, _, _, err = parseFileName("x_create.up.sql")
	assert.Error(t, err)
}

func TestStatements(t *testing.T) {
	got := statements("CREATE TABLE a (id INT);\n\nCREATE TABLE b (\n id INT\n);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (\n id INT\n)"}, got)
}

func TestUp_AppliesAllAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	applied, err := Up(ctx, db, "sqlite3")
	require.NoError(t, err)
	assert.Len(t, applied, 7)

	for _, table := range []string{"venue", "artist", "show", "genre", "venue_genres", "artist_genres"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	var genres int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM genre`).Scan(&genres))
	assert.Equal(t, 19, genres)

	again, err := Up(ctx, db, "sqlite3")
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestDown_RevertsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	_, err := Up(ctx, db, "sqlite3")
	require.NoError(t, err)

	reverted, err := Down(ctx, db, "sqlite3", 2)
	require.NoError(t, err)
	require.Len(t, reverted, 2)
	assert.Equal(t, 7, reverted[0].Version)
	assert.Equal(t, 6, reverted[1].Version)
	assert.False(t, tableExists(t, db, "artist_genres"))
	assert.True(t, tableExists(t, db, "venue_genres"))

	states, err := Status(ctx, db, "sqlite3")
	require.NoError(t, err)
	require.Len(t, states, 7)
	assert.True(t, states[4].Applied)
	assert.False(t, states[5].Applied)
	assert.False(t, states[6].Applied)
	assert.False(t, states[0].AppliedAt.IsZero())

	// re-applying brings the schema back
	applied, err := Up(ctx, db, "sqlite3")
	require.NoError(t, err)
	assert.Len(t, applied, 2)
	assert.True(t, tableExists(t, db, "artist_genres"))
}

func TestDown_All(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	_, err := Up(ctx, db, "sqlite3")
	require.NoError(t, err)

	reverted, err := Down(ctx, db, "sqlite3", 100)
	require.NoError(t, err)
	assert.Len(t, reverted, 7)
	assert.False(t, tableExists(t, db, "venue"))
	assert.True(t, tableExists(t, db, "schema_migrations"))
}

func TestDown_RejectsZeroSteps(t *testing.T) {
	_, err := Down(context.Background(), openDB(t), "sqlite3", 0)
	assert.Error(t, err)
}
