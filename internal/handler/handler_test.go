package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/dbtest"
	"github.com/iliyamo/stagebook/internal/middleware"
	"github.com/iliyamo/stagebook/internal/repository"
	"github.com/iliyamo/stagebook/internal/service"
	"github.com/iliyamo/stagebook/internal/web"
)

const testSecret = "test-flash-secret"

var fixedNow = time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)

// newServer builds the full echo stack, minus the rate limiter, over a
// fresh sqlite database.
func newServer(t *testing.T) (*echo.Echo, *sql.DB) {
	t.Helper()
	db := dbtest.Open(t)
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	h := &Handler{
		Venues:      repository.NewVenueRepo(db),
		Artists:     repository.NewArtistRepo(db),
		Shows:       repository.NewShowRepo(db),
		Genres:      repository.NewGenreRepo(db),
		Lister:      service.NewLister(db, nil),
		FlashSecret: testSecret,
		Now:         func() time.Time { return fixedNow },
	}

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = h.HTTPErrorHandler
	e.Use(middleware.ReadFlash(testSecret))
	registerTestRoutes(e, h)
	return e, db
}

// registerTestRoutes mirrors router.RegisterRoutes and RegisterForms; the
// router package imports this one.
func registerTestRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", h.Home)
	e.GET("/healthz", h.Health)
	e.GET("/venues", h.ListVenues)
	e.GET("/venues/create", h.CreateVenueForm)
	e.GET("/venues/:id", h.ShowVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.DELETE("/venues/:id", h.DeleteVenue)
	e.GET("/artists", h.ListArtists)
	e.GET("/artists/create", h.CreateArtistForm)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.GET("/shows", h.ListShows)
	e.GET("/shows/create", h.CreateShowForm)
	e.POST("/venues/search", h.SearchVenues)
	e.POST("/venues/create", h.CreateVenue)
	e.POST("/venues/:id/edit", h.EditVenue)
	e.POST("/artists/search", h.SearchArtists)
	e.POST("/artists/create", h.CreateArtist)
	e.POST("/artists/:id/edit", h.EditArtist)
	e.POST("/shows/create", h.CreateShow)
}

func get(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHomeAndHealth(t *testing.T) {
	e, _ := newServer(t)

	rec := get(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post a venue")
	assert.Contains(t, rec.Body.String(), "Listings as of Saturday October, 17, 2026 at 8:00PM")

	rec = get(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListVenues_GroupsByCityAndState(t *testing.T) {
	e, db := newServer(t)
	hop := dbtest.InsertVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	dbtest.InsertVenue(t, db, "Park Square Live Music & Coffee", "San Francisco", "CA")
	dbtest.InsertVenue(t, db, "The Dueling Pianos Bar", "New York", "NY")
	artist := dbtest.InsertArtist(t, db, "Guns N Petals", "San Francisco", "CA")
	dbtest.InsertShow(t, db, hop, artist, fixedNow.Add(24*time.Hour))
	dbtest.InsertShow(t, db, hop, artist, fixedNow.Add(-24*time.Hour))

	rec := get(e, "/venues")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, "San Francisco, CA"))
	assert.Contains(t, body, "New York, NY")
	assert.Contains(t, body, "1 upcoming show<")
	assert.Contains(t, body, "Park Square Live Music &amp; Coffee")
	assert.Less(t, strings.Index(body, "San Francisco, CA"), strings.Index(body, "New York, NY"))
}

func TestSearchVenues_CaseInsensitive(t *testing.T) {
	e, db := newServer(t)
	dbtest.InsertVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	dbtest.InsertVenue(t, db, "Jazz Club", "New York", "NY")

	for _, term := range []string{"Hop", "hop"} {
		rec := postForm(e, "/venues/search", url.Values{"search_term": {term}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `Number of search results for "`+term+`": 1`)
		assert.Contains(t, rec.Body.String(), "The Musical Hop")
		assert.NotContains(t, rec.Body.String(), "Jazz Club")
	}
}

func TestSearchArtists(t *testing.T) {
	e, db := newServer(t)
	dbtest.InsertArtist(t, db, "Guns N Petals", "San Francisco", "CA")
	dbtest.InsertArtist(t, db, "The Wild Sax Band", "San Francisco", "CA")

	rec := postForm(e, "/artists/search", url.Values{"search_term": {"A"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `Number of search results for "A": 2`)
}

func TestShowVenue(t *testing.T) {
	e, db := newServer(t)
	hop := dbtest.InsertVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	artist := dbtest.InsertArtist(t, db, "Guns N Petals", "San Francisco", "CA")
	dbtest.InsertShow(t, db, hop, artist, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC))
	dbtest.InsertShow(t, db, hop, artist, time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC))
	dbtest.InsertShow(t, db, hop, artist, fixedNow)

	rec := get(e, "/venues/1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>The Musical Hop</h1>")
	assert.Contains(t, body, "1 Upcoming Show<")
	assert.Contains(t, body, "1 Past Show<")
	assert.Contains(t, body, "Sun Apr, 01, 2035 8:00PM")
	assert.Contains(t, body, "Tue May, 21, 2019 9:30PM")
	assert.NotContains(t, body, "Sat Oct, 17, 2026 8:00PM")
}

func TestShowVenue_MissingRedirects(t *testing.T) {
	e, _ := newServer(t)

	rec := get(e, "/venues/42")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/venues", rec.Header().Get(echo.HeaderLocation))

	rec = get(e, "/artists/42")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/artists", rec.Header().Get(echo.HeaderLocation))
}

func TestMalformedIDAndUnknownRoute(t *testing.T) {
	e, _ := newServer(t)

	for _, path := range []string{"/venues/abc", "/artists/-1", "/no/such/page"} {
		rec := get(e, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "does not exist", path)
	}
}

func TestCreateVenue(t *testing.T) {
	e, db := newServer(t)

	rec := postForm(e, "/venues/create", url.Values{
		"name":           {"The Musical Hop"},
		"city":           {"San Francisco"},
		"state":          {"CA"},
		"address":        {"1015 Folsom Street"},
		"phone":          {"123-123-1234"},
		"genres":         {"Jazz", "Reggae", ""},
		"seeking_talent": {"y"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `alert-success`)
	assert.Contains(t, rec.Body.String(), "Venue The Musical Hop was successfully listed!")
	assert.Equal(t, 1, dbtest.Count(t, db, "venue"))
	assert.Equal(t, 2, dbtest.Count(t, db, "venue_genres"))
}

func TestCreateVenue_UnknownGenre(t *testing.T) {
	e, db := newServer(t)

	rec := postForm(e, "/venues/create", url.Values{
		"name":    {"The Musical Hop"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1015 Folsom Street"},
		"genres":  {"Jazz", "Polka"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `alert-danger`)
	assert.Contains(t, rec.Body.String(), "Venue The Musical Hop could not be listed.")
	assert.Equal(t, 0, dbtest.Count(t, db, "venue"))
}

func TestCreateArtistAndList(t *testing.T) {
	e, _ := newServer(t)

	rec := get(e, "/artists/create")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rock n Roll")

	rec = postForm(e, "/artists/create", url.Values{
		"name":   {"Guns N Petals"},
		"city":   {"San Francisco"},
		"state":  {"CA"},
		"genres": {"Rock n Roll"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Artist Guns N Petals was successfully listed!")

	rec = get(e, "/artists")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<a href="/artists/1">Guns N Petals</a>`)
}

func TestCreateShowAndList(t *testing.T) {
	e, db := newServer(t)
	dbtest.InsertVenue(t, db, "The Musical Hop", "San Francisco", "CA")
	dbtest.InsertArtist(t, db, "Guns N Petals", "San Francisco", "CA")

	rec := get(e, "/shows/create")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="2026-10-17 20:00"`)

	rec = postForm(e, "/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"1"},
		"start_time": {"2035-04-01 20:00"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Show 1 was successfully listed!")

	rec = postForm(e, "/shows/create", url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"7"},
		"start_time": {"2035-04-01 20:00"},
	})
	assert.Contains(t, rec.Body.String(), "Show could not be listed.")
	assert.Equal(t, 1, dbtest.Count(t, db, "show"))

	rec = get(e, "/shows")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sun Apr, 01, 2035 8:00PM")
	assert.Contains(t, rec.Body.String(), "The Musical Hop")
}

func TestDeleteVenue_NotImplemented(t *testing.T) {
	e, db := newServer(t)
	dbtest.InsertVenue(t, db, "The Musical Hop", "San Francisco", "CA")

	req := httptest.NewRequest(http.MethodDelete, "/venues/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Body.String(), "Deleting venues is not implemented.")
	assert.Equal(t, 1, dbtest.Count(t, db, "venue"))
}

func TestEditVenue_NotImplemented(t *testing.T) {
	e, db := newServer(t)
	dbtest.InsertVenue(t, db, "The Musical Hop", "San Francisco", "CA")

	rec := get(e, "/venues/1/edit")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Body.String(), "Editing venues is not implemented.")
	assert.Contains(t, rec.Body.String(), `href="/venues/1"`)

	rec = postForm(e, "/venues/1/edit", url.Values{"name": {"Renamed"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues/1", rec.Header().Get(echo.HeaderLocation))

	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.FlashCookie {
			flash = c
		}
	}
	require.NotNil(t, flash)

	rec = get(e, "/venues/1", flash)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-danger")
	assert.Contains(t, rec.Body.String(), "Editing venues is not implemented.")
	assert.Contains(t, rec.Body.String(), "The Musical Hop")

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.FlashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestEditArtist_NotImplemented(t *testing.T) {
	e, db := newServer(t)
	dbtest.InsertArtist(t, db, "Guns N Petals", "San Francisco", "CA")

	rec := get(e, "/artists/1/edit")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Body.String(), "Editing artists is not implemented.")

	rec = postForm(e, "/artists/1/edit", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/artists/1", rec.Header().Get(echo.HeaderLocation))
}

func TestFormListNormalizesAndSkipsBlanks(t *testing.T) {
	e := echo.New()
	form := url.Values{"genres": {"  Jazz ", "", "Cafe\u0301"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, []string{"Jazz", "Caf\u00e9"}, formList(c, "genres"))
}
