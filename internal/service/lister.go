// Package service implements the record mutations behind the creation
// forms.  Each mutation runs in one transaction and reports its outcome as
// a Notification value rather than an error.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/stagebook/internal/datefmt"
	"github.com/iliyamo/stagebook/internal/model"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/repository"
)

// ErrUnknownGenre fails a mutation that names a genre with no exact match.
var ErrUnknownGenre = errors.New("unknown genre")

// Notification categories.
const (
	CategorySuccess = "success"
	CategoryError   = "danger"
)

// Notification is the one-shot message shown on the next rendered page.
type Notification struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// OK reports whether the notification describes a success.
func (n Notification) OK() bool { return n.Category == CategorySuccess }

func success(format string, args ...any) Notification {
	return Notification{Category: CategorySuccess, Message: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Notification {
	return Notification{Category: CategoryError, Message: fmt.Sprintf(format, args...)}
}

// EventPublisher announces committed listings.  *queue.Publisher
// implements it.
type EventPublisher interface {
	PublishListingCreated(ctx context.Context, ev queue.ListingCreatedEvent) error
}

// Lister creates venues, artists and shows.
type Lister struct {
	db      *sql.DB
	venues  *repository.VenueRepo
	artists *repository.ArtistRepo
	shows   *repository.ShowRepo
	genres  *repository.GenreRepo
	events  EventPublisher
	now     func() time.Time
}

// NewLister wires a Lister to db.  events may be nil, in which case no
// listing events are published.
func NewLister(db *sql.DB, events EventPublisher) *Lister {
	return &Lister{
		db:      db,
		venues:  repository.NewVenueRepo(db),
		artists: repository.NewArtistRepo(db),
		shows:   repository.NewShowRepo(db),
		genres:  repository.NewGenreRepo(db),
		events:  events,
		now:     time.Now,
	}
}

// inTx runs fn in a transaction, rolling back unless fn succeeds and the
// commit goes through.
func (l *Lister) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (l *Lister) resolveGenres(ctx context.Context, tx *sql.Tx, names []string) ([]uint64, error) {
	ids, err := l.genres.ResolveTx(ctx, tx, names)
	if errors.Is(err, repository.ErrGenreNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrUnknownGenre, err)
	}
	return ids, err
}

func (l *Lister) publish(ctx context.Context, ev queue.ListingCreatedEvent) {
	if l.events == nil {
		return
	}
	ev.CreatedAt = l.now().UTC().Format(time.RFC3339)
	if err := l.events.PublishListingCreated(ctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Uint64("id", ev.ID).Msg("publish listing event failed")
	}
}

// CreateVenue validates in, inserts the venue and its genre links, and
// reports the outcome.
func (l *Lister) CreateVenue(ctx context.Context, in VenueInput) Notification {
	in = in.trimmed()
	id, err := l.createVenue(ctx, in)
	if err != nil {
		log.Error().Err(err).Str("name", in.Name).Msg("create venue failed")
		return failure("Venue %s could not be listed.", in.Name)
	}
	l.publish(ctx, queue.ListingCreatedEvent{
		Kind: queue.KindVenue, ID: id, Name: in.Name, City: in.City, State: in.State, Genres: in.Genres,
	})
	return success("Venue %s was successfully listed!", in.Name)
}

func (l *Lister) createVenue(ctx context.Context, in VenueInput) (uint64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	v := &model.Venue{
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Address:            in.Address,
		Phone:              optional(in.Phone),
		Website:            optional(in.Website),
		ImageLink:          optional(in.ImageLink),
		FacebookLink:       optional(in.FacebookLink),
		SeekingTalent:      seeking(in.SeekingTalent),
		SeekingDescription: optional(in.SeekingDescription),
	}
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		ids, err := l.resolveGenres(ctx, tx, in.Genres)
		if err != nil {
			return err
		}
		if err := l.venues.CreateTx(ctx, tx, v); err != nil {
			return err
		}
		return l.venues.AddGenresTx(ctx, tx, v.ID, ids)
	})
	if err != nil {
		return 0, err
	}
	return v.ID, nil
}

// CreateArtist validates in, inserts the artist and its genre links, and
// reports the outcome.
func (l *Lister) CreateArtist(ctx context.Context, in ArtistInput) Notification {
	in = in.trimmed()
	id, err := l.createArtist(ctx, in)
	if err != nil {
		log.Error().Err(err).Str("name", in.Name).Msg("create artist failed")
		return failure("Artist %s could not be listed.", in.Name)
	}
	l.publish(ctx, queue.ListingCreatedEvent{
		Kind: queue.KindArtist, ID: id, Name: in.Name, City: in.City, State: in.State, Genres: in.Genres,
	})
	return success("Artist %s was successfully listed!", in.Name)
}

func (l *Lister) createArtist(ctx context.Context, in ArtistInput) (uint64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	a := &model.Artist{
		Name:               in.Name,
		City:               in.City,
		State:              in.State,
		Phone:              optional(in.Phone),
		Website:            optional(in.Website),
		ImageLink:          optional(in.ImageLink),
		FacebookLink:       optional(in.FacebookLink),
		SeekingVenue:       seeking(in.SeekingVenue),
		SeekingDescription: optional(in.SeekingDescription),
	}
	err := l.inTx(ctx, func(tx *sql.Tx) error {
		ids, err := l.resolveGenres(ctx, tx, in.Genres)
		if err != nil {
			return err
		}
		if err := l.artists.CreateTx(ctx, tx, a); err != nil {
			return err
		}
		return l.artists.AddGenresTx(ctx, tx, a.ID, ids)
	})
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

// CreateShow books an artist at a venue.  The start time accepts any
// layout the formatter parses; ids that reference no row fail on the
// foreign key and nothing is written.
func (l *Lister) CreateShow(ctx context.Context, in ShowInput) Notification {
	in = in.trimmed()
	s, err := l.createShow(ctx, in)
	if err != nil {
		log.Error().Err(err).
			Str("venue_id", in.VenueID).
			Str("artist_id", in.ArtistID).
			Str("start_time", in.StartTime).
			Msg("create show failed")
		return failure("Show could not be listed.")
	}
	l.publish(ctx, queue.ListingCreatedEvent{
		Kind: queue.KindShow, ID: s.ID, VenueID: s.VenueID, ArtistID: s.ArtistID,
		StartTime: s.StartTime.Format(time.RFC3339),
	})
	return success("Show %d was successfully listed!", s.ID)
}

func (l *Lister) createShow(ctx context.Context, in ShowInput) (*model.Show, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	venueID, err := strconv.ParseUint(in.VenueID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("venue_id: %w", err)
	}
	artistID, err := strconv.ParseUint(in.ArtistID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("artist_id: %w", err)
	}
	start, err := datefmt.Parse(in.StartTime)
	if err != nil {
		return nil, err
	}
	s := &model.Show{VenueID: venueID, ArtistID: artistID, StartTime: start.UTC()}
	if err := l.inTx(ctx, func(tx *sql.Tx) error {
		return l.shows.CreateTx(ctx, tx, s)
	}); err != nil {
		return nil, err
	}
	return s, nil
}
