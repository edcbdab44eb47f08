package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/stagebook/internal/model"
)

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// DB exposes the underlying sql.DB.
func (r *ArtistRepo) DB() *sql.DB {
	return r.db
}

const artistColumns = `id, name, city, state, phone, website, image_link,
	facebook_link, seeking_venue, seeking_description`

func scanArtist(s rowScanner) (model.Artist, error) {
	var a model.Artist
	var phone, website, image, facebook, desc sql.NullString
	if err := s.Scan(&a.ID, &a.Name, &a.City, &a.State,
		&phone, &website, &image, &facebook, &a.SeekingVenue, &desc); err != nil {
		return model.Artist{}, err
	}
	a.Phone = nullString(phone)
	a.Website = nullString(website)
	a.ImageLink = nullString(image)
	a.FacebookLink = nullString(facebook)
	a.SeekingDescription = nullString(desc)
	return a, nil
}

func (r *ArtistRepo) list(ctx context.Context, q string, args ...any) ([]model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	return r.list(ctx, `SELECT `+artistColumns+` FROM artist ORDER BY id`)
}

// SearchByName returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	return r.list(ctx,
		`SELECT `+artistColumns+` FROM artist WHERE LOWER(name) LIKE ? ESCAPE '`+likeEscape+`' ORDER BY id`,
		containsPattern(term))
}

// GetByID retrieves an artist by id.  It returns ErrArtistNotFound if there
// is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx, `SELECT `+artistColumns+` FROM artist WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &a, nil
}

// CreateTx inserts a using the caller's transaction and sets a.ID.
func (r *ArtistRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Artist) error {
	const q = `INSERT INTO artist (name, city, state, phone, website, image_link,
		facebook_link, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State,
		nullable(a.Phone), nullable(a.Website), nullable(a.ImageLink), nullable(a.FacebookLink),
		a.SeekingVenue, nullable(a.SeekingDescription))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// AddGenresTx links an artist to genres inside the caller's transaction.
func (r *ArtistRepo) AddGenresTx(ctx context.Context, tx *sql.Tx, artistID uint64, genreIDs []uint64) error {
	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO artist_genres (artist_id, genre_id) VALUES (?, ?)`, artistID, gid); err != nil {
			return err
		}
	}
	return nil
}

// Genres returns the genres linked to an artist ordered by name.
func (r *ArtistRepo) Genres(ctx context.Context, artistID uint64) ([]model.Genre, error) {
	const q = `SELECT g.id, g.name FROM genre g
		JOIN artist_genres ag ON ag.genre_id = g.id
		WHERE ag.artist_id = ?
		ORDER BY g.name`
	return queryGenres(ctx, r.db, q, artistID)
}
