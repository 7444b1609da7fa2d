package models

import "time"

// StartTimeLayout is the text form of a show's start time.
const StartTimeLayout = "2006-01-02 15:04:05"

// Show links a venue and an artist at a start time.
type Show struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}

// ShowTime carries a show's start time in both text and time form.
type ShowTime struct {
	StartTime string    `json:"start_time"`
	StartsAt  time.Time `json:"-"`
}

// NewShowTime formats t with StartTimeLayout.
func NewShowTime(t time.Time) ShowTime {
	return ShowTime{StartTime: t.Format(StartTimeLayout), StartsAt: t}
}

// ShowListing is a show joined with its venue and artist.
type ShowListing struct {
	ID              int64  `json:"id"`
	VenueID         int64  `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link,omitempty"`
	NumShows        int    `json:"num_shows,omitempty"`
	ShowTime
}

// SearchResult is the outcome of a free-text search.
type SearchResult[T any] struct {
	SearchTerm string `json:"search_term"`
	Count      int    `json:"count"`
	Data       []T    `json:"data"`
}

// Today returns midnight of now's calendar day as a zone-less wall clock
// value, matching how start times are stored.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsUpcoming reports whether a show starting at start is upcoming relative to
// today. Shows earlier on the current day still count as upcoming.
func IsUpcoming(start, today time.Time) bool {
	return !start.Before(today)
}
