package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fyyur/internal/models"
)

// ErrArtistNotFound indicates no artist has the requested id.
var ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)

// ListArtists returns every artist with their upcoming show count, ordered by id.
func (s *Store) ListArtists(ctx context.Context) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name,
		       COUNT(s.id) FILTER (WHERE s.start_time >= $1) AS num_upcoming_shows
		FROM "Artist" a
		LEFT JOIN "Show" s ON s.artist_id = a.id
		GROUP BY a.id
		ORDER BY a.id
	`, s.today())
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows)
}

// SearchArtists returns artists whose name contains term, ignoring case.
func (s *Store) SearchArtists(ctx context.Context, term string) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name,
		       COUNT(s.id) FILTER (WHERE s.start_time >= $1) AS num_upcoming_shows
		FROM "Artist" a
		LEFT JOIN "Show" s ON s.artist_id = a.id
		WHERE a.name ILIKE $2
		GROUP BY a.id
		ORDER BY a.id
	`, s.today(), likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows)
}

// RecentArtists returns the most recently listed artists with their upcoming
// show counts, newest first.
func (s *Store) RecentArtists(ctx context.Context, limit int) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name,
		       COUNT(s.id) FILTER (WHERE s.start_time >= $1) AS num_upcoming_shows
		FROM "Artist" a
		LEFT JOIN "Show" s ON s.artist_id = a.id
		GROUP BY a.id
		ORDER BY a.id DESC
		LIMIT $2
	`, s.today(), limit)
	if err != nil {
		return nil, fmt.Errorf("recent artists: %w", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows)
}

func scanArtistSummaries(rows *sql.Rows) ([]models.ArtistSummary, error) {
	artists := make([]models.ArtistSummary, 0)
	for rows.Next() {
		var a models.ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// GetArtist retrieves a single artist by ID.
func (s *Store) GetArtist(ctx context.Context, id int64) (models.Artist, error) {
	var (
		a      models.Artist
		genres string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, COALESCE(phone, ''), COALESCE(image_link, ''),
		       COALESCE(facebook_link, ''), seeking_venue, COALESCE(seeking_description, ''),
		       COALESCE(genres, '')
		FROM "Artist"
		WHERE id = $1
	`, id).Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.ImageLink,
		&a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription, &genres,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Artist{}, ErrArtistNotFound
		}
		return models.Artist{}, fmt.Errorf("select artist: %w", err)
	}

	a.Genres = DecodeGenres(genres)
	return a, nil
}

// ArtistDetail returns an artist with their shows split into past and upcoming.
func (s *Store) ArtistDetail(ctx context.Context, id int64) (models.ArtistDetail, error) {
	artist, err := s.GetArtist(ctx, id)
	if err != nil {
		return models.ArtistDetail{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, COALESCE(v.image_link, ''), s.start_time
		FROM "Show" s
		JOIN "Venue" v ON v.id = s.venue_id
		WHERE s.artist_id = $1
		ORDER BY s.start_time, s.id
	`, id)
	if err != nil {
		return models.ArtistDetail{}, fmt.Errorf("select artist shows: %w", err)
	}
	defer rows.Close()

	detail := models.ArtistDetail{
		Artist:        artist,
		PastShows:     make([]models.ArtistShow, 0),
		UpcomingShows: make([]models.ArtistShow, 0),
	}
	today := s.today()

	for rows.Next() {
		var show models.ArtistShow
		if err := rows.Scan(&show.VenueID, &show.VenueName, &show.VenueImageLink, &show.StartsAt); err != nil {
			return models.ArtistDetail{}, fmt.Errorf("scan artist show: %w", err)
		}
		show.ShowTime = models.NewShowTime(show.StartsAt)
		if models.IsUpcoming(show.StartsAt, today) {
			detail.UpcomingShows = append(detail.UpcomingShows, show)
		} else {
			detail.PastShows = append(detail.PastShows, show)
		}
	}
	if err := rows.Err(); err != nil {
		return models.ArtistDetail{}, fmt.Errorf("iterate artist shows: %w", err)
	}

	detail.PastShowsCount = len(detail.PastShows)
	detail.UpcomingShowsCount = len(detail.UpcomingShows)
	return detail, nil
}

// CreateArtist inserts an artist and returns the new id.
func (s *Store) CreateArtist(ctx context.Context, a models.Artist) (int64, error) {
	genres, err := EncodeGenres(a.Genres)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO "Artist" (name, city, state, phone, image_link, facebook_link,
		                      seeking_venue, seeking_description, genres)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, a.Name, a.City, a.State, nullIfEmpty(a.Phone), a.ImageLink, a.FacebookLink,
		a.SeekingVenue, a.SeekingDescription, genres,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert artist: %w", err)
	}

	return id, nil
}

// UpdateArtist overwrites every mutable field of the artist identified by a.ID.
func (s *Store) UpdateArtist(ctx context.Context, a models.Artist) error {
	genres, err := EncodeGenres(a.Genres)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE "Artist"
		SET name = $1, city = $2, state = $3, phone = $4, image_link = $5,
		    facebook_link = $6, seeking_venue = $7, seeking_description = $8, genres = $9
		WHERE id = $10
	`, a.Name, a.City, a.State, nullIfEmpty(a.Phone), a.ImageLink,
		a.FacebookLink, a.SeekingVenue, a.SeekingDescription, genres, a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update artist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	if affected == 0 {
		return ErrArtistNotFound
	}
	return nil
}

// DeleteArtist removes an artist together with their shows.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM "Show" WHERE artist_id = $1`, id); err != nil {
		return fmt.Errorf("delete artist shows: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM "Artist" WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	if affected == 0 {
		return ErrArtistNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}
