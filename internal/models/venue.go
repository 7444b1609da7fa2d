package models

// Venue is a place that hosts shows and may be looking for talent.
type Venue struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone,omitempty"`
	ImageLink          string   `json:"image_link,omitempty"`
	FacebookLink       string   `json:"facebook_link,omitempty"`
	Website            string   `json:"website,omitempty"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description,omitempty"`
	Genres             []string `json:"genres"`
}

// VenueSummary is the short form of a venue used by listings and search.
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	City             string `json:"-"`
	State            string `json:"-"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// VenueGroup collects the venues sharing a city and state.
type VenueGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueShow is a show as seen from its venue.
type VenueShow struct {
	ArtistID        int64  `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link,omitempty"`
	ShowTime
}

// VenueDetail is a venue together with its past and upcoming shows.
type VenueDetail struct {
	Venue
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// GroupVenues groups summaries by city and state. Groups keep the order in
// which their first venue appears.
func GroupVenues(venues []VenueSummary) []VenueGroup {
	groups := make([]VenueGroup, 0)
	index := make(map[[2]string]int)

	for _, v := range venues {
		key := [2]string{v.City, v.State}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, VenueGroup{City: v.City, State: v.State})
		}
		groups[i].Venues = append(groups[i].Venues, v)
	}

	return groups
}
