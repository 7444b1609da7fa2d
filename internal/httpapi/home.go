package httpapi

import (
	"net/http"

	"fyyur/internal/models"
)

const recentLimit = 10

type homeView struct {
	Venues  []models.VenueSummary  `json:"recent_venues"`
	Artists []models.ArtistSummary `json:"recent_artists"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.Recent(r.Context(), recentLimit)
	if err != nil {
		s.serverError(w, r, err, "failed to load recent venues")
		return
	}
	artists, err := s.artists.Recent(r.Context(), recentLimit)
	if err != nil {
		s.serverError(w, r, err, "failed to load recent artists")
		return
	}
	s.render(w, r, http.StatusOK, "home", "Fyyur", homeView{Venues: venues, Artists: artists})
}
