package venues

import (
	"context"
	"net/url"

	"fyyur/internal/app"
	"fyyur/internal/models"
)

// Fields are the editable attributes of a venue as submitted by its form.
type Fields struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,us_state"`
	Address            string   `form:"address" json:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" json:"phone" validate:"omitempty,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	Website            string   `form:"website_link" json:"website" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" json:"genres" validate:"min=1,dive,genre"`
	SeekingTalent      bool     `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=500"`
}

// CreateRequest is a submitted new-venue form.
type CreateRequest struct {
	Fields
}

// EditRequest is a submitted edit form for an existing venue.
type EditRequest struct {
	ID int64 `form:"-" json:"id" validate:"gt=0"`
	Fields
}

// FieldsFromForm decodes a submitted venue form.
func FieldsFromForm(form url.Values) Fields {
	return Fields{
		Name:               app.FormString(form, "name"),
		City:               app.FormString(form, "city"),
		State:              app.FormString(form, "state"),
		Address:            app.FormString(form, "address"),
		Phone:              app.FormString(form, "phone"),
		ImageLink:          app.FormString(form, "image_link"),
		FacebookLink:       app.FormString(form, "facebook_link"),
		Website:            app.FormString(form, "website_link"),
		Genres:             app.FormList(form, "genres"),
		SeekingTalent:      app.SeekingFlag(form, "seeking_talent"),
		SeekingDescription: app.FormString(form, "seeking_description"),
	}
}

func (f Fields) venue(id int64) models.Venue {
	return models.Venue{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}
}

// Store defines persistence operations for venues.
type Store interface {
	ListVenues(ctx context.Context) ([]models.VenueSummary, error)
	SearchVenues(ctx context.Context, term string) ([]models.VenueSummary, error)
	RecentVenues(ctx context.Context, limit int) ([]models.VenueSummary, error)
	GetVenue(ctx context.Context, id int64) (models.Venue, error)
	VenueDetail(ctx context.Context, id int64) (models.VenueDetail, error)
	CreateVenue(ctx context.Context, v models.Venue) (int64, error)
	UpdateVenue(ctx context.Context, v models.Venue) error
	DeleteVenue(ctx context.Context, id int64) error
}

// Service coordinates venue operations.
type Service interface {
	List(ctx context.Context) ([]models.VenueGroup, error)
	Search(ctx context.Context, term string) (models.SearchResult[models.VenueSummary], error)
	Recent(ctx context.Context, limit int) ([]models.VenueSummary, error)
	Detail(ctx context.Context, id int64) (models.VenueDetail, error)
	Create(ctx context.Context, req CreateRequest) (int64, error)
	EditForm(ctx context.Context, id int64) (EditRequest, error)
	Update(ctx context.Context, req EditRequest) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs a venues Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.VenueGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	venues, err := s.store.ListVenues(ctx)
	if err != nil {
		return nil, err
	}
	return models.GroupVenues(venues), nil
}

func (s *service) Search(ctx context.Context, term string) (models.SearchResult[models.VenueSummary], error) {
	if err := ctx.Err(); err != nil {
		return models.SearchResult[models.VenueSummary]{}, err
	}
	venues, err := s.store.SearchVenues(ctx, term)
	if err != nil {
		return models.SearchResult[models.VenueSummary]{}, err
	}
	return models.SearchResult[models.VenueSummary]{SearchTerm: term, Count: len(venues), Data: venues}, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]models.VenueSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.RecentVenues(ctx, limit)
}

func (s *service) Detail(ctx context.Context, id int64) (models.VenueDetail, error) {
	if err := ctx.Err(); err != nil {
		return models.VenueDetail{}, err
	}
	return s.store.VenueDetail(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := app.Validate(req); err != nil {
		return 0, err
	}
	return s.store.CreateVenue(ctx, req.venue(0))
}

func (s *service) EditForm(ctx context.Context, id int64) (EditRequest, error) {
	if err := ctx.Err(); err != nil {
		return EditRequest{}, err
	}
	v, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return EditRequest{}, err
	}
	return EditRequest{
		ID: v.ID,
		Fields: Fields{
			Name:               v.Name,
			City:               v.City,
			State:              v.State,
			Address:            v.Address,
			Phone:              v.Phone,
			ImageLink:          v.ImageLink,
			FacebookLink:       v.FacebookLink,
			Website:            v.Website,
			Genres:             v.Genres,
			SeekingTalent:      v.SeekingTalent,
			SeekingDescription: v.SeekingDescription,
		},
	}, nil
}

// Update overwrites every editable field of an existing row. A missing row is
// reported before the submitted fields are validated.
func (s *service) Update(ctx context.Context, req EditRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.store.GetVenue(ctx, req.ID); err != nil {
		return err
	}
	if err := app.Validate(req); err != nil {
		return err
	}
	return s.store.UpdateVenue(ctx, req.venue(req.ID))
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id)
}
