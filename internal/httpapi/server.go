package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/flash"
	"fyyur/internal/http/middleware"
	"fyyur/internal/models"
)

// VenueService coordinates venue workflows.
type VenueService interface {
	List(ctx context.Context) ([]models.VenueGroup, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.VenueSummary], error)
	Recent(ctx context.Context, limit int) ([]models.VenueSummary, error)
	Detail(ctx context.Context, id int64) (models.VenueDetail, error)
	Create(ctx context.Context, req venues.CreateRequest) (int64, error)
	EditForm(ctx context.Context, id int64) (venues.EditRequest, error)
	Update(ctx context.Context, req venues.EditRequest) error
	Delete(ctx context.Context, id int64) error
}

// ArtistService coordinates artist workflows.
type ArtistService interface {
	List(ctx context.Context) ([]models.ArtistSummary, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.ArtistSummary], error)
	Recent(ctx context.Context, limit int) ([]models.ArtistSummary, error)
	Detail(ctx context.Context, id int64) (models.ArtistDetail, error)
	Create(ctx context.Context, req artists.CreateRequest) (int64, error)
	EditForm(ctx context.Context, id int64) (artists.EditRequest, error)
	Update(ctx context.Context, req artists.EditRequest) error
	Delete(ctx context.Context, id int64) error
}

// ShowService coordinates show workflows.
type ShowService interface {
	Create(ctx context.Context, req shows.CreateRequest) (int64, error)
	ListUpcoming(ctx context.Context) ([]models.ShowListing, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.ShowListing], error)
}

// Notices stores one-shot notices shown on the next rendered page.
type Notices interface {
	Add(w http.ResponseWriter, r *http.Request, messages ...flash.Message) error
	Pop(w http.ResponseWriter, r *http.Request) []flash.Message
}

// Option customises a Server.
type Option func(*Server)

// WithMiddleware appends router middleware, run after logging and recovery.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Server) {
		s.middleware = append(s.middleware, mw...)
	}
}

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithProxyHeaders takes the client address from X-Forwarded-For or
// X-Real-IP. Only enable it behind a proxy that overwrites those headers,
// otherwise clients choose their own address for rate limiting and logs.
func WithProxyHeaders() Option {
	return func(s *Server) {
		s.trustProxy = true
	}
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
	notices Notices

	middleware []func(http.Handler) http.Handler
	metrics    http.Handler
	trustProxy bool
}

// New configures a Server with the given services.
func New(venues VenueService, artists ArtistService, shows ShowService, notices Notices, opts ...Option) *Server {
	s := &Server{
		venues:  venues,
		artists: artists,
		shows:   shows,
		notices: notices,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	if s.trustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestLogging())
	r.Use(middleware.Recovery(http.HandlerFunc(s.handleInternalError)))
	for _, mw := range s.middleware {
		r.Use(mw)
	}

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/", s.handleHome)

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", s.handleListVenues)
		r.Post("/search", s.handleSearchVenues)
		r.Get("/create", s.handleNewVenueForm)
		r.Post("/create", s.handleCreateVenue)
		r.Get("/{id:[0-9]+}", s.handleShowVenue)
		r.Delete("/{id:[0-9]+}", s.handleDeleteVenue)
		r.Get("/{id:[0-9]+}/edit", s.handleEditVenueForm)
		r.Post("/{id:[0-9]+}/edit", s.handleUpdateVenue)
	})

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", s.handleListArtists)
		r.Post("/search", s.handleSearchArtists)
		r.Get("/create", s.handleNewArtistForm)
		r.Post("/create", s.handleCreateArtist)
		r.Get("/{id:[0-9]+}", s.handleShowArtist)
		r.Delete("/{id:[0-9]+}", s.handleDeleteArtist)
		r.Get("/{id:[0-9]+}/edit", s.handleEditArtistForm)
		r.Post("/{id:[0-9]+}/edit", s.handleUpdateArtist)
	})

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", s.handleListShows)
		r.Post("/search", s.handleSearchShows)
		r.Get("/create", s.handleNewShowForm)
		r.Post("/create", s.handleCreateShow)
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return middleware.MethodOverride(r)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// pathID returns the numeric id route parameter. Routes only match digits,
// so a parse failure means the value overflowed.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
