package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"fyyur/internal/app"
	"fyyur/internal/app/venues"
	"fyyur/internal/flash"
	"fyyur/internal/logging"
)

type venueForm struct {
	ID     int64             `json:"id,omitempty"`
	Action string            `json:"-"`
	Form   venues.Fields     `json:"form"`
	Errors map[string]string `json:"errors,omitempty"`
	Error  string            `json:"error,omitempty"`
}

type deleteResponse struct {
	Success bool   `json:"Success"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := s.venues.List(r.Context())
	if err != nil {
		s.serverError(w, r, err, "failed to list venues")
		return
	}
	s.render(w, r, http.StatusOK, "venues", "Venues", groups)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	result, err := s.venues.Search(r.Context(), r.PostForm.Get("search_term"))
	if err != nil {
		s.serverError(w, r, err, "failed to search venues")
		return
	}
	s.render(w, r, http.StatusOK, "search", "Venue Search", searchView{
		Kind:       "venues",
		SearchTerm: result.SearchTerm,
		Count:      result.Count,
		Data:       result.Data,
	})
}

func (s *Server) handleShowVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	detail, err := s.venues.Detail(r.Context(), id)
	if err != nil {
		if app.KindOf(err) == app.KindNotFound {
			logging.WithContext(r.Context()).Info().Int64("venue_id", id).Msg("venue not found")
			s.redirect(w, r, "/venues", flash.Error("An error occurred. Venue cannot be found."))
			return
		}
		s.serverError(w, r, err, "failed to load venue")
		return
	}
	s.render(w, r, http.StatusOK, "venue", detail.Name, detail)
}

func (s *Server) handleNewVenueForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "venue_form", "List a new venue", venueForm{
		Action: "/venues/create",
		Form:   venues.Fields{SeekingTalent: true},
	})
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	req := venues.CreateRequest{Fields: venues.FieldsFromForm(r.PostForm)}
	form := venueForm{Action: "/venues/create", Form: req.Fields}

	if _, err := s.venues.Create(r.Context(), req); err != nil {
		s.venueFormFailure(w, r, "List a new venue", form, err,
			flash.Error("An error occurred. Venue %s could not be listed.", req.Name))
		return
	}

	s.redirect(w, r, "/", flash.Success("Venue %s was successfully listed!", req.Name))
}

func (s *Server) handleEditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	req, err := s.venues.EditForm(r.Context(), id)
	if err != nil {
		if app.KindOf(err) == app.KindNotFound {
			s.redirect(w, r, "/venues", flash.Error("An error occurred. Venue cannot be found."))
			return
		}
		s.serverError(w, r, err, "failed to load venue for edit")
		return
	}

	s.render(w, r, http.StatusOK, "venue_form", "Edit venue", venueForm{
		ID:     req.ID,
		Action: fmt.Sprintf("/venues/%d/edit", req.ID),
		Form:   req.Fields,
	})
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	req := venues.EditRequest{ID: id, Fields: venues.FieldsFromForm(r.PostForm)}
	form := venueForm{ID: id, Action: fmt.Sprintf("/venues/%d/edit", id), Form: req.Fields}

	if err := s.venues.Update(r.Context(), req); err != nil {
		if app.KindOf(err) == app.KindNotFound {
			s.redirect(w, r, "/venues", flash.Error("An error occurred. Venue cannot be found."))
			return
		}
		s.venueFormFailure(w, r, "Edit venue", form, err,
			flash.Error("An error occurred. Venue %s could not be updated.", req.Name))
		return
	}

	s.redirect(w, r, fmt.Sprintf("/venues/%d", id), flash.Success("Venue %s was successfully updated!", req.Name))
}

// venueFormFailure re-renders a venue form with the submitted data after a
// failed create or update.
func (s *Server) venueFormFailure(w http.ResponseWriter, r *http.Request, title string, form venueForm, err error, notice flash.Message) {
	status, notices := formFailure(r, err, notice)
	form.Errors = app.FieldErrors(err)
	if len(notices) > 0 {
		form.Error = notice.Text
	}
	s.render(w, r, status, "venue_form", title, form, notices...)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.finishDelete(w, r, errors.New("invalid venue id"), flash.Message{})
		return
	}

	err := s.venues.Delete(r.Context(), id)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("venue_id", id).Msg("failed to delete venue")
	}
	s.finishDelete(w, r, err, flash.Success("Venue has been deleted successfully!!"))
}
