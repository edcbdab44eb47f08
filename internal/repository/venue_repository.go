package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/stagebook/internal/model"
)

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can open a transaction that
// spans several repositories.
func (r *VenueRepo) DB() *sql.DB {
	return r.db
}

const venueColumns = `id, name, city, state, address, phone, website, image_link,
	facebook_link, seeking_talent, seeking_description`

func scanVenue(s rowScanner) (model.Venue, error) {
	var v model.Venue
	var phone, website, image, facebook, desc sql.NullString
	if err := s.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address,
		&phone, &website, &image, &facebook, &v.SeekingTalent, &desc); err != nil {
		return model.Venue{}, err
	}
	v.Phone = nullString(phone)
	v.Website = nullString(website)
	v.ImageLink = nullString(image)
	v.FacebookLink = nullString(facebook)
	v.SeekingDescription = nullString(desc)
	return v, nil
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every venue ordered by id.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	return r.list(ctx, `SELECT `+venueColumns+` FROM venue ORDER BY id`)
}

// SearchByName returns venues whose name contains term, ignoring case.
// An empty term returns every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	return r.list(ctx,
		`SELECT `+venueColumns+` FROM venue WHERE LOWER(name) LIKE ? ESCAPE '`+likeEscape+`' ORDER BY id`,
		containsPattern(term))
}

// GetByID fetches a venue by its id.  It returns ErrVenueNotFound if no row
// is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venue WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// CreateTx inserts v using the caller's transaction and sets v.ID.  The
// caller must commit or roll back.
func (r *VenueRepo) CreateTx(ctx context.Context, tx *sql.Tx, v *model.Venue) error {
	const q = `INSERT INTO venue (name, city, state, address, phone, website, image_link,
		facebook_link, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address,
		nullable(v.Phone), nullable(v.Website), nullable(v.ImageLink), nullable(v.FacebookLink),
		v.SeekingTalent, nullable(v.SeekingDescription))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return nil
}

// AddGenresTx links a venue to genres inside the caller's transaction.
func (r *VenueRepo) AddGenresTx(ctx context.Context, tx *sql.Tx, venueID uint64, genreIDs []uint64) error {
	for _, gid := range genreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO venue_genres (venue_id, genre_id) VALUES (?, ?)`, venueID, gid); err != nil {
			return err
		}
	}
	return nil
}

// Genres returns the genres linked to a venue ordered by name.
func (r *VenueRepo) Genres(ctx context.Context, venueID uint64) ([]model.Genre, error) {
	const q = `SELECT g.id, g.name FROM genre g
		JOIN venue_genres vg ON vg.genre_id = g.id
		WHERE vg.venue_id = ?
		ORDER BY g.name`
	return queryGenres(ctx, r.db, q, venueID)
}
