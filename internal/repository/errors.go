// Package repository holds the SQL behind every page and form.  Queries
// are written once for both MySQL and SQLite: `?` placeholders, the show
// table always back-quoted, and no dialect-specific functions.
package repository

import (
	"database/sql"
	"errors"
	"strings"
)

// ErrVenueNotFound is returned when no venue row has the requested id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist row has the requested id.
var ErrArtistNotFound = errors.New("artist not found")

// ErrGenreNotFound is returned when a genre name has no exact match.
var ErrGenreNotFound = errors.New("genre not found")

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// nullString converts a nullable column into a model pointer.
func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// nullable converts a model pointer into a query argument; nil binds NULL.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// likeEscape is the escape character used by every LIKE in this package.
const likeEscape = "!"

// containsPattern turns a search term into a lower-cased LIKE pattern that
// matches it as a literal substring.  The empty term matches everything.
func containsPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
