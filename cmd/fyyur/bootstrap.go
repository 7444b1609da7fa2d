package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fyyur/internal/models"
	"fyyur/internal/store"
)

// bootstrapDemoData lists a few venues, artists and shows when the database
// has none yet.
func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	exists, err := tableExists(ctx, db, `"Venue"`)
	if err != nil {
		return fmt.Errorf("check venue table: %w", err)
	}
	if !exists {
		log.Warn().Msg("skipping demo data: schema not migrated")
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Venue"`).Scan(&count); err != nil {
		return fmt.Errorf("count venues: %w", err)
	}
	if count > 0 {
		return nil
	}

	demoVenues := []models.Venue{
		{
			Name:               "The Musical Hop",
			City:               "San Francisco",
			State:              "CA",
			Address:            "1015 Folsom Street",
			Phone:              "123-123-1234",
			Website:            "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
			Genres:             []string{"Jazz", "Reggae", "Blues", "Classical", "Folk"},
		},
		{
			Name:          "The Dueling Pianos Bar",
			City:          "New York",
			State:         "NY",
			Address:       "335 Delancey Street",
			Phone:         "914-003-1132",
			Website:       "https://www.theduelingpianos.com",
			FacebookLink:  "https://www.facebook.com/theduelingpianos",
			SeekingTalent: false,
			Genres:        []string{"Classical", "R&B", "Hip-Hop"},
		},
		{
			Name:          "Park Square Live Music & Coffee",
			City:          "San Francisco",
			State:         "CA",
			Address:       "34 Whiskey Moore Ave",
			Phone:         "415-000-1234",
			Website:       "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink:  "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
			SeekingTalent: false,
			Genres:        []string{"Rock n Roll", "Jazz", "Classical", "Folk"},
		},
	}

	demoArtists := []models.Artist{
		{
			Name:               "Guns N Petals",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
			Genres:             []string{"Rock n Roll"},
		},
		{
			Name:         "Matt Quevedo",
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
			SeekingVenue: false,
			Genres:       []string{"Jazz"},
		},
		{
			Name:         "The Wild Sax Band",
			City:         "San Francisco",
			State:        "CA",
			Phone:        "432-325-5432",
			SeekingVenue: false,
			Genres:       []string{"Jazz", "Classical"},
		},
	}

	venueIDs := make([]int64, 0, len(demoVenues))
	for _, v := range demoVenues {
		id, err := dataStore.CreateVenue(ctx, v)
		if err != nil {
			return fmt.Errorf("seed venue %q: %w", v.Name, err)
		}
		venueIDs = append(venueIDs, id)
	}

	artistIDs := make([]int64, 0, len(demoArtists))
	for _, a := range demoArtists {
		id, err := dataStore.CreateArtist(ctx, a)
		if err != nil {
			return fmt.Errorf("seed artist %q: %w", a.Name, err)
		}
		artistIDs = append(artistIDs, id)
	}

	today := models.Today(time.Now())
	at := func(days, hour int) time.Time {
		return today.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}

	demoShows := []models.Show{
		{VenueID: venueIDs[0], ArtistID: artistIDs[0], StartTime: at(-30, 21)},
		{VenueID: venueIDs[2], ArtistID: artistIDs[1], StartTime: at(-12, 20)},
		{VenueID: venueIDs[2], ArtistID: artistIDs[2], StartTime: at(14, 20)},
		{VenueID: venueIDs[2], ArtistID: artistIDs[2], StartTime: at(21, 20)},
		{VenueID: venueIDs[0], ArtistID: artistIDs[2], StartTime: at(28, 19)},
	}
	for _, show := range demoShows {
		if _, err := dataStore.CreateShow(ctx, show); err != nil {
			return fmt.Errorf("seed show: %w", err)
		}
	}

	log.Info().
		Int("venues", len(venueIDs)).
		Int("artists", len(artistIDs)).
		Int("shows", len(demoShows)).
		Msg("demo data seeded")
	return nil
}

type queryRower interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryRower, table string) (bool, error) {
	var name sql.NullString
	if err := q.QueryRowContext(ctx, `SELECT to_regclass($1)`, table).Scan(&name); err != nil {
		return false, err
	}
	return name.Valid, nil
}
