package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/stagebook/internal/model"
)

// ShowRepo manages persistence for shows.  `show` is a reserved word in
// MySQL, hence the back-quotes in every statement.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

// CreateTx inserts s using the caller's transaction and sets s.ID.  A
// venue or artist id with no row fails on the foreign key.
func (r *ShowRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	const q = "INSERT INTO `show` (start_time, venue_id, artist_id) VALUES (?, ?, ?)"
	res, err := tx.ExecContext(ctx, q, s.StartTime, s.VenueID, s.ArtistID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListAll returns every show ordered by id.  Listing pages count upcoming
// shows from it.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, venue_id, artist_id, start_time FROM `show` ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Show{}
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.VenueID, &s.ArtistID, &s.StartTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const listingSelect = "SELECT s.id, s.start_time, v.id, v.name, v.image_link, a.id, a.name, a.image_link " +
	"FROM `show` s " +
	"JOIN venue v ON v.id = s.venue_id " +
	"JOIN artist a ON a.id = s.artist_id "

func (r *ShowRepo) listings(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ShowListing{}
	for rows.Next() {
		var l model.ShowListing
		var venueImage, artistImage sql.NullString
		if err := rows.Scan(&l.ID, &l.StartTime, &l.VenueID, &l.VenueName, &venueImage,
			&l.ArtistID, &l.ArtistName, &artistImage); err != nil {
			return nil, err
		}
		l.VenueImageLink = nullString(venueImage)
		l.ArtistImageLink = nullString(artistImage)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListListings returns every show with its venue and artist, ordered by id.
func (r *ShowRepo) ListListings(ctx context.Context) ([]model.ShowListing, error) {
	return r.listings(ctx, listingSelect+"ORDER BY s.id")
}

// ListByVenue returns the shows at one venue ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, listingSelect+"WHERE s.venue_id = ? ORDER BY s.start_time, s.id", venueID)
}

// ListByArtist returns the shows of one artist ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.listings(ctx, listingSelect+"WHERE s.artist_id = ? ORDER BY s.start_time, s.id", artistID)
}
