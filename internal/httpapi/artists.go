package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"fyyur/internal/app"
	"fyyur/internal/app/artists"
	"fyyur/internal/flash"
	"fyyur/internal/logging"
)

type artistForm struct {
	ID     int64             `json:"id,omitempty"`
	Action string            `json:"-"`
	Form   artists.Fields    `json:"form"`
	Errors map[string]string `json:"errors,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	list, err := s.artists.List(r.Context())
	if err != nil {
		s.serverError(w, r, err, "failed to list artists")
		return
	}
	s.render(w, r, http.StatusOK, "artists", "Artists", list)
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	result, err := s.artists.Search(r.Context(), r.PostForm.Get("search_term"))
	if err != nil {
		s.serverError(w, r, err, "failed to search artists")
		return
	}
	s.render(w, r, http.StatusOK, "search", "Artist Search", searchView{
		Kind:       "artists",
		SearchTerm: result.SearchTerm,
		Count:      result.Count,
		Data:       result.Data,
	})
}

func (s *Server) handleShowArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	detail, err := s.artists.Detail(r.Context(), id)
	if err != nil {
		if app.KindOf(err) == app.KindNotFound {
			logging.WithContext(r.Context()).Info().Int64("artist_id", id).Msg("artist not found")
			s.redirect(w, r, "/artists", flash.Error("An error occurred. Artist cannot be found."))
			return
		}
		s.serverError(w, r, err, "failed to load artist")
		return
	}
	s.render(w, r, http.StatusOK, "artist", detail.Name, detail)
}

func (s *Server) handleNewArtistForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "artist_form", "List a new artist", artistForm{
		Action: "/artists/create",
		Form:   artists.Fields{SeekingVenue: true},
	})
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	req := artists.CreateRequest{Fields: artists.FieldsFromForm(r.PostForm)}
	form := artistForm{Action: "/artists/create", Form: req.Fields}

	if _, err := s.artists.Create(r.Context(), req); err != nil {
		s.artistFormFailure(w, r, "List a new artist", form, err,
			flash.Error("An error occurred. Artist %s could not be listed.", req.Name))
		return
	}

	s.redirect(w, r, "/", flash.Success("Artist %s was successfully listed!", req.Name))
}

func (s *Server) handleEditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	req, err := s.artists.EditForm(r.Context(), id)
	if err != nil {
		if app.KindOf(err) == app.KindNotFound {
			s.redirect(w, r, "/artists", flash.Error("An error occurred. Artist cannot be found."))
			return
		}
		s.serverError(w, r, err, "failed to load artist for edit")
		return
	}

	s.render(w, r, http.StatusOK, "artist_form", "Edit artist", artistForm{
		ID:     req.ID,
		Action: fmt.Sprintf("/artists/%d/edit", req.ID),
		Form:   req.Fields,
	})
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	req := artists.EditRequest{ID: id, Fields: artists.FieldsFromForm(r.PostForm)}
	form := artistForm{ID: id, Action: fmt.Sprintf("/artists/%d/edit", id), Form: req.Fields}

	if err := s.artists.Update(r.Context(), req); err != nil {
		if app.KindOf(err) == app.KindNotFound {
			s.redirect(w, r, "/artists", flash.Error("An error occurred. Artist cannot be found."))
			return
		}
		s.artistFormFailure(w, r, "Edit artist", form, err,
			flash.Error("An error occurred. Artist %s could not be updated.", req.Name))
		return
	}

	s.redirect(w, r, fmt.Sprintf("/artists/%d", id), flash.Success("Artist %s was successfully updated!", req.Name))
}

func (s *Server) artistFormFailure(w http.ResponseWriter, r *http.Request, title string, form artistForm, err error, notice flash.Message) {
	status, notices := formFailure(r, err, notice)
	form.Errors = app.FieldErrors(err)
	if len(notices) > 0 {
		form.Error = notice.Text
	}
	s.render(w, r, status, "artist_form", title, form, notices...)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.finishDelete(w, r, errors.New("invalid artist id"), flash.Message{})
		return
	}

	err := s.artists.Delete(r.Context(), id)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("artist_id", id).Msg("failed to delete artist")
	}
	s.finishDelete(w, r, err, flash.Success("Artist has been deleted successfully!!"))
}
