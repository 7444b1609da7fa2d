package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fyyur/internal/models"
)

// ErrVenueNotFound indicates no venue has the requested id.
var ErrVenueNotFound = fmt.Errorf("venue %w", ErrNotFound)

// ListVenues returns every venue with its upcoming show count, ordered by id.
func (s *Store) ListVenues(ctx context.Context) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.city, v.state,
		       COUNT(s.id) FILTER (WHERE s.start_time >= $1) AS num_upcoming_shows
		FROM "Venue" v
		LEFT JOIN "Show" s ON s.venue_id = v.id
		GROUP BY v.id
		ORDER BY v.id
	`, s.today())
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	return scanVenueSummaries(rows)
}

// SearchVenues returns venues whose name contains term, ignoring case.
func (s *Store) SearchVenues(ctx context.Context, term string) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.city, v.state,
		       COUNT(s.id) FILTER (WHERE s.start_time >= $1) AS num_upcoming_shows
		FROM "Venue" v
		LEFT JOIN "Show" s ON s.venue_id = v.id
		WHERE v.name ILIKE $2
		GROUP BY v.id
		ORDER BY v.id
	`, s.today(), likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	defer rows.Close()

	return scanVenueSummaries(rows)
}

// RecentVenues returns the most recently listed venues with their upcoming
// show counts, newest first.
func (s *Store) RecentVenues(ctx context.Context, limit int) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.city, v.state,
		       COUNT(s.id) FILTER (WHERE s.start_time >= $1) AS num_upcoming_shows
		FROM "Venue" v
		LEFT JOIN "Show" s ON s.venue_id = v.id
		GROUP BY v.id
		ORDER BY v.id DESC
		LIMIT $2
	`, s.today(), limit)
	if err != nil {
		return nil, fmt.Errorf("recent venues: %w", err)
	}
	defer rows.Close()

	return scanVenueSummaries(rows)
}

func scanVenueSummaries(rows *sql.Rows) ([]models.VenueSummary, error) {
	venues := make([]models.VenueSummary, 0)
	for rows.Next() {
		var v models.VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}
	return venues, nil
}

// GetVenue retrieves a single venue by ID.
func (s *Store) GetVenue(ctx context.Context, id int64) (models.Venue, error) {
	var (
		v      models.Venue
		genres string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, COALESCE(address, ''), COALESCE(phone, ''),
		       COALESCE(image_link, ''), COALESCE(facebook_link, ''), COALESCE(website, ''),
		       seeking_talent, COALESCE(seeking_description, ''), COALESCE(genres, '')
		FROM "Venue"
		WHERE id = $1
	`, id).Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&v.ImageLink, &v.FacebookLink, &v.Website,
		&v.SeekingTalent, &v.SeekingDescription, &genres,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Venue{}, ErrVenueNotFound
		}
		return models.Venue{}, fmt.Errorf("select venue: %w", err)
	}

	v.Genres = DecodeGenres(genres)
	return v, nil
}

// VenueDetail returns a venue with its shows split into past and upcoming.
func (s *Store) VenueDetail(ctx context.Context, id int64) (models.VenueDetail, error) {
	venue, err := s.GetVenue(ctx, id)
	if err != nil {
		return models.VenueDetail{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, COALESCE(a.image_link, ''), s.start_time
		FROM "Show" s
		JOIN "Artist" a ON a.id = s.artist_id
		WHERE s.venue_id = $1
		ORDER BY s.start_time, s.id
	`, id)
	if err != nil {
		return models.VenueDetail{}, fmt.Errorf("select venue shows: %w", err)
	}
	defer rows.Close()

	detail := models.VenueDetail{
		Venue:         venue,
		PastShows:     make([]models.VenueShow, 0),
		UpcomingShows: make([]models.VenueShow, 0),
	}
	today := s.today()

	for rows.Next() {
		var show models.VenueShow
		if err := rows.Scan(&show.ArtistID, &show.ArtistName, &show.ArtistImageLink, &show.StartsAt); err != nil {
			return models.VenueDetail{}, fmt.Errorf("scan venue show: %w", err)
		}
		show.ShowTime = models.NewShowTime(show.StartsAt)
		if models.IsUpcoming(show.StartsAt, today) {
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		} else {
			detail.PastShows = append(detail.PastShows, show)
		}
	}
	if err := rows.Err(); err != nil {
		return models.VenueDetail{}, fmt.Errorf("iterate venue shows: %w", err)
	}

	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

// CreateVenue inserts a venue and returns its new id.
func (s *Store) CreateVenue(ctx context.Context, v models.Venue) (int64, error) {
	genres, err := EncodeGenres(v.Genres)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO "Venue" (name, city, state, address, phone, image_link, facebook_link,
		                     website, seeking_talent, seeking_description, genres)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, v.Name, v.City, v.State, v.Address, nullIfEmpty(v.Phone), v.ImageLink, v.FacebookLink,
		v.Website, v.SeekingTalent, v.SeekingDescription, genres,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert venue: %w", err)
	}

	return id, nil
}

// UpdateVenue overwrites every mutable field of the venue identified by v.ID.
func (s *Store) UpdateVenue(ctx context.Context, v models.Venue) error {
	genres, err := EncodeGenres(v.Genres)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE "Venue"
		SET name = $1, city = $2, state = $3, address = $4, phone = $5, image_link = $6,
		    facebook_link = $7, website = $8, seeking_talent = $9, seeking_description = $10,
		    genres = $11
		WHERE id = $12
	`, v.Name, v.City, v.State, v.Address, nullIfEmpty(v.Phone), v.ImageLink,
		v.FacebookLink, v.Website, v.SeekingTalent, v.SeekingDescription,
		genres, v.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update venue: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	if affected == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// DeleteVenue removes a venue together with the shows booked there.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM "Show" WHERE venue_id = $1`, id); err != nil {
		return fmt.Errorf("delete venue shows: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM "Venue" WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if affected == 0 {
		return ErrVenueNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}
