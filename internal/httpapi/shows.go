package httpapi

import (
	"net/http"

	"fyyur/internal/app"
	"fyyur/internal/app/shows"
	"fyyur/internal/flash"
)

type showForm struct {
	ArtistID  string            `json:"artist_id"`
	VenueID   string            `json:"venue_id"`
	StartTime string            `json:"start_time"`
	Errors    map[string]string `json:"errors,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// searchView is the result page shared by venue, artist and show search.
type searchView struct {
	Kind       string `json:"-"`
	SearchTerm string `json:"search_term"`
	Count      int    `json:"count"`
	Data       any    `json:"data"`
}

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	list, err := s.shows.ListUpcoming(r.Context())
	if err != nil {
		s.serverError(w, r, err, "failed to list shows")
		return
	}
	s.render(w, r, http.StatusOK, "shows", "Shows", list)
}

func (s *Server) handleSearchShows(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	result, err := s.shows.Search(r.Context(), r.PostForm.Get("search_term"))
	if err != nil {
		s.serverError(w, r, err, "failed to search shows")
		return
	}
	s.render(w, r, http.StatusOK, "search", "Show Search", searchView{
		Kind:       "shows",
		SearchTerm: result.SearchTerm,
		Count:      result.Count,
		Data:       result.Data,
	})
}

func (s *Server) handleNewShowForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "show_form", "List a new show", showForm{})
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest)
		return
	}

	form := showForm{
		ArtistID:  r.PostForm.Get("artist_id"),
		VenueID:   r.PostForm.Get("venue_id"),
		StartTime: r.PostForm.Get("start_time"),
	}
	notice := flash.Error("An error occurred. Show could not be listed.")

	req, err := shows.CreateRequestFromForm(r.PostForm)
	if err == nil {
		_, err = s.shows.Create(r.Context(), req)
	}
	if err != nil {
		status, _ := formFailure(r, err, notice)
		form.Errors = app.FieldErrors(err)
		form.Error = notice.Text
		s.render(w, r, status, "show_form", "List a new show", form, notice)
		return
	}

	s.redirect(w, r, "/", flash.Success("Show was successfully listed!"))
}
