package artists

import (
	"context"
	"net/url"

	"fyyur/internal/app"
	"fyyur/internal/models"
)

// Fields are the editable attributes of an artist as submitted by their form.
type Fields struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,us_state"`
	Phone              string   `form:"phone" json:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" json:"genres" validate:"min=1,dive,genre"`
	SeekingVenue       bool     `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=500"`
}

// CreateRequest is a submitted new-artist form.
type CreateRequest struct {
	Fields
}

// EditRequest is a submitted edit form for an existing artist.
type EditRequest struct {
	ID int64 `form:"-" json:"id" validate:"gt=0"`
	Fields
}

// FieldsFromForm decodes a submitted artist form.
func FieldsFromForm(form url.Values) Fields {
	return Fields{
		Name:               app.FormString(form, "name"),
		City:               app.FormString(form, "city"),
		State:              app.FormString(form, "state"),
		Phone:              app.FormString(form, "phone"),
		ImageLink:          app.FormString(form, "image_link"),
		FacebookLink:       app.FormString(form, "facebook_link"),
		Genres:             app.FormList(form, "genres"),
		SeekingVenue:       app.SeekingFlag(form, "seeking_venue"),
		SeekingDescription: app.FormString(form, "seeking_description"),
	}
}

func (f Fields) artist(id int64) models.Artist {
	return models.Artist{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}
}

// Store defines persistence operations for artists.
type Store interface {
	ListArtists(ctx context.Context) ([]models.ArtistSummary, error)
	SearchArtists(ctx context.Context, term string) ([]models.ArtistSummary, error)
	RecentArtists(ctx context.Context, limit int) ([]models.ArtistSummary, error)
	GetArtist(ctx context.Context, id int64) (models.Artist, error)
	ArtistDetail(ctx context.Context, id int64) (models.ArtistDetail, error)
	CreateArtist(ctx context.Context, a models.Artist) (int64, error)
	UpdateArtist(ctx context.Context, a models.Artist) error
	DeleteArtist(ctx context.Context, id int64) error
}

// Service provides artist-centric operations.
type Service interface {
	List(ctx context.Context) ([]models.ArtistSummary, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.ArtistSummary], error)
	Recent(ctx context.Context, limit int) ([]models.ArtistSummary, error)
	Detail(ctx context.Context, id int64) (models.ArtistDetail, error)
	Create(ctx context.Context, req CreateRequest) (int64, error)
	EditForm(ctx context.Context, id int64) (EditRequest, error)
	Update(ctx context.Context, req EditRequest) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs an artist Service backed by the supplied store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Search(ctx context.Context, term string) (models.SearchResult[models.ArtistSummary], error) {
	if err := ctx.Err(); err != nil {
		return models.SearchResult[models.ArtistSummary]{}, err
	}
	artists, err := s.store.SearchArtists(ctx, term)
	if err != nil {
		return models.SearchResult[models.ArtistSummary]{}, err
	}
	return models.SearchResult[models.ArtistSummary]{SearchTerm: term, Count: len(artists), Data: artists}, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]models.ArtistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.RecentArtists(ctx, limit)
}

func (s *service) Detail(ctx context.Context, id int64) (models.ArtistDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistDetail{}, err
	}
	return s.store.ArtistDetail(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := app.Validate(req); err != nil {
		return 0, err
	}
	return s.store.CreateArtist(ctx, req.artist(0))
}

func (s *service) EditForm(ctx context.Context, id int64) (EditRequest, error) {
	if err := ctx.Err(); err != nil {
		return EditRequest{}, err
	}
	a, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return EditRequest{}, err
	}
	return EditRequest{
		ID: a.ID,
		Fields: Fields{
			Name:               a.Name,
			City:               a.City,
			State:              a.State,
			Phone:              a.Phone,
			ImageLink:          a.ImageLink,
			FacebookLink:       a.FacebookLink,
			Genres:             a.Genres,
			SeekingVenue:       a.SeekingVenue,
			SeekingDescription: a.SeekingDescription,
		},
	}, nil
}

// Update overwrites every editable field of an existing row. A missing row is
// reported before the submitted fields are validated.
func (s *service) Update(ctx context.Context, req EditRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.store.GetArtist(ctx, req.ID); err != nil {
		return err
	}
	if err := app.Validate(req); err != nil {
		return err
	}
	return s.store.UpdateArtist(ctx, req.artist(req.ID))
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}
