package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/stagebook/internal/model"
)

// GenreRepo reads the genre catalogue.  Genres are seeded by migration and
// never written by the application.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo with the given DB handle.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryGenres(ctx context.Context, q querier, query string, args ...any) ([]model.Genre, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Genre{}
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every genre ordered by name.  The creation forms render
// one checkbox per row.
func (r *GenreRepo) ListAll(ctx context.Context) ([]model.Genre, error) {
	return queryGenres(ctx, r.db, `SELECT id, name FROM genre ORDER BY name`)
}

// ResolveTx maps genre names to ids inside the caller's transaction.  The
// match is exact and case-sensitive on every backend; the first name with
// no match fails the whole lookup with ErrGenreNotFound.  Duplicate names
// resolve to a single id.
func (r *GenreRepo) ResolveTx(ctx context.Context, tx *sql.Tx, names []string) ([]uint64, error) {
	seen := make(map[uint64]bool, len(names))
	out := make([]uint64, 0, len(names))
	for _, name := range names {
		id, err := resolveGenre(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func resolveGenre(ctx context.Context, q querier, name string) (uint64, error) {
	// MySQL's default collation compares case-insensitively, so the final
	// comparison happens here.
	rows, err := q.QueryContext(ctx, `SELECT id, name FROM genre WHERE name = ?`, name)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return 0, err
		}
		if g.Name == name {
			return g.ID, nil
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("%w: %q", ErrGenreNotFound, name)
}
