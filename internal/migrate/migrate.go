// Package migrate applies the versioned schema changes embedded in the
// binary.  Migrations are linear: each NNNN_name.up.sql has a matching
// NNNN_name.down.sql, and the applied set is recorded in schema_migrations.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

//go:embed migrations
var migrationFS embed.FS

// ErrUnknownDialect is returned for a driver with no embedded migrations.
var ErrUnknownDialect = errors.New("migrate: unknown dialect")

// Migration is one reversible schema step.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// State reports whether a migration has been applied.
type State struct {
	Migration
	Applied   bool
	AppliedAt time.Time
}

const createStateTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER NOT NULL PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    applied_at DATETIME NOT NULL
)`

// Load reads the migrations for dialect ("mysql" or "sqlite3") ordered by
// version.
func Load(dialect string) ([]Migration, error) {
	dir := path.Join("migrations", dialect)
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, dialect)
	}
	byVersion := map[int]*Migration{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		version, name, direction, err := parseFileName(e.Name())
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(migrationFS, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		if direction == "up" {
			m.Up = string(body)
		} else {
			m.Down = string(body)
		}
	}
	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" || m.Down == "" {
			return nil, fmt.Errorf("migrate: %04d_%s is missing its up or down file", m.Version, m.Name)
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// parseFileName splits "0003_add_venue_missing_fields.up.sql".
func parseFileName(file string) (version int, name, direction string, err error) {
	base := strings.TrimSuffix(file, ".sql")
	switch {
	case strings.HasSuffix(base, ".up"):
		direction = "up"
	case strings.HasSuffix(base, ".down"):
		direction = "down"
	default:
		return 0, "", "", fmt.Errorf("migrate: %s: want NNNN_name.up.sql or NNNN_name.down.sql", file)
	}
	base = strings.TrimSuffix(base, "."+direction)
	num, name, ok := strings.Cut(base, "_")
	if !ok {
		return 0, "", "", fmt.Errorf("migrate: %s: missing version prefix", file)
	}
	version, err = strconv.Atoi(num)
	if err != nil {
		return 0, "", "", fmt.Errorf("migrate: %s: bad version: %w", file, err)
	}
	return version, name, direction, nil
}

// statements splits a migration body on statement terminators at line end.
func statements(body string) []string {
	var out []string
	for _, s := range strings.Split(body, ";\n") {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func applied(ctx context.Context, db *sql.DB) (map[int]time.Time, error) {
	if _, err := db.ExecContext(ctx, createStateTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := db.QueryContext(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[int]time.Time{}
	for rows.Next() {
		var v int
		var at time.Time
		if err := rows.Scan(&v, &at); err != nil {
			return nil, err
		}
		out[v] = at
	}
	return out, rows.Err()
}

// run executes one direction of a migration and updates schema_migrations
// in the same transaction.  MySQL commits DDL implicitly, so a failure
// half way through a MySQL migration may need manual repair.
func run(ctx context.Context, db *sql.DB, m Migration, up bool) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	body := m.Down
	if up {
		body = m.Up
	}
	for _, stmt := range statements(body) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %04d_%s: %w", m.Version, m.Name, err)
		}
	}
	if up {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
			m.Version, m.Name, time.Now().UTC())
	} else {
		_, err = tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, m.Version)
	}
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Up applies every pending migration in version order and returns the ones
// it applied.
func Up(ctx context.Context, db *sql.DB, dialect string) ([]Migration, error) {
	all, err := Load(dialect)
	if err != nil {
		return nil, err
	}
	done, err := applied(ctx, db)
	if err != nil {
		return nil, err
	}
	var out []Migration
	for _, m := range all {
		if _, ok := done[m.Version]; ok {
			continue
		}
		if err := run(ctx, db, m, true); err != nil {
			return out, err
		}
		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("migration applied")
		out = append(out, m)
	}
	return out, nil
}

// Down reverts the newest steps applied migrations.
func Down(ctx context.Context, db *sql.DB, dialect string, steps int) ([]Migration, error) {
	if steps < 1 {
		return nil, fmt.Errorf("migrate: steps must be at least 1, got %d", steps)
	}
	all, err := Load(dialect)
	if err != nil {
		return nil, err
	}
	done, err := applied(ctx, db)
	if err != nil {
		return nil, err
	}
	var out []Migration
	for i := len(all) - 1; i >= 0 && len(out) < steps; i-- {
		m := all[i]
		if _, ok := done[m.Version]; !ok {
			continue
		}
		if err := run(ctx, db, m, false); err != nil {
			return out, err
		}
		log.Info().Int("version", m.Version).Str("name", m.Name).Msg("migration reverted")
		out = append(out, m)
	}
	return out, nil
}

// Status lists every known migration with its applied state.
func Status(ctx context.Context, db *sql.DB, dialect string) ([]State, error) {
	all, err := Load(dialect)
	if err != nil {
		return nil, err
	}
	done, err := applied(ctx, db)
	if err != nil {
		return nil, err
	}
	out := make([]State, 0, len(all))
	for _, m := range all {
		at, ok := done[m.Version]
		out = append(out, State{Migration: m, Applied: ok, AppliedAt: at})
	}
	return out, nil
}
