package shows

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fyyur/internal/app"
	"fyyur/internal/models"
)

// startTimeLayouts are the accepted spellings of a show's start time.
var startTimeLayouts = []string{
	models.StartTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// CreateRequest is a submitted new-show form.
type CreateRequest struct {
	ArtistID  int64     `form:"artist_id" json:"artist_id" validate:"gt=0"`
	VenueID   int64     `form:"venue_id" json:"venue_id" validate:"gt=0"`
	StartTime time.Time `form:"start_time" json:"start_time" validate:"required"`
}

// CreateRequestFromForm decodes a submitted show form. Unparseable values are
// reported as field errors.
func CreateRequestFromForm(form url.Values) (CreateRequest, error) {
	var (
		req    CreateRequest
		fields = map[string]string{}
	)

	if id, err := parseID(form.Get("artist_id")); err != nil {
		fields["artist_id"] = "Not a valid integer value."
	} else {
		req.ArtistID = id
	}
	if id, err := parseID(form.Get("venue_id")); err != nil {
		fields["venue_id"] = "Not a valid integer value."
	} else {
		req.VenueID = id
	}

	raw := strings.TrimSpace(form.Get("start_time"))
	if raw == "" {
		fields["start_time"] = "This field is required."
	} else if start, ok := ParseStartTime(raw); ok {
		req.StartTime = start
	} else {
		fields["start_time"] = "Not a valid datetime value."
	}

	if len(fields) > 0 {
		return req, &app.ValidationError{Fields: fields}
	}
	return req, nil
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// ParseStartTime parses raw as a zone-less wall clock time. Values carrying
// an offset keep their wall clock reading.
func ParseStartTime(raw string) (time.Time, bool) {
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		y, mo, d := t.Date()
		h, mi, s := t.Clock()
		return time.Date(y, mo, d, h, mi, s, 0, time.UTC), true
	}
	return time.Time{}, false
}

// Store defines persistence operations for shows.
type Store interface {
	CreateShow(ctx context.Context, show models.Show) (int64, error)
	ListUpcomingShows(ctx context.Context) ([]models.ShowListing, error)
	SearchShows(ctx context.Context, term string) ([]models.ShowListing, error)
}

// Service coordinates show operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (int64, error)
	ListUpcoming(ctx context.Context) ([]models.ShowListing, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.ShowListing], error)
}

type service struct {
	store Store
}

// New constructs a shows Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := app.Validate(req); err != nil {
		return 0, err
	}
	return s.store.CreateShow(ctx, models.Show{
		VenueID:   req.VenueID,
		ArtistID:  req.ArtistID,
		StartTime: req.StartTime,
	})
}

func (s *service) ListUpcoming(ctx context.Context) ([]models.ShowListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListUpcomingShows(ctx)
}

func (s *service) Search(ctx context.Context, term string) (models.SearchResult[models.ShowListing], error) {
	if err := ctx.Err(); err != nil {
		return models.SearchResult[models.ShowListing]{}, err
	}
	shows, err := s.store.SearchShows(ctx, term)
	if err != nil {
		return models.SearchResult[models.ShowListing]{}, err
	}
	return models.SearchResult[models.ShowListing]{SearchTerm: term, Count: len(shows), Data: shows}, nil
}
