package store

import (
	"context"
	"database/sql"
	"fmt"

	"fyyur/internal/models"
)

// CreateShow books an artist at a venue. Unknown venue or artist ids are
// rejected by the foreign keys and reported as ErrInvalidReference.
func (s *Store) CreateShow(ctx context.Context, show models.Show) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO "Show" (venue_id, artist_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, show.VenueID, show.ArtistID, show.StartTime).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrInvalidReference
		}
		return 0, fmt.Errorf("insert show: %w", err)
	}
	return id, nil
}

// ListUpcomingShows returns upcoming shows grouped by venue. Each row carries
// the number of upcoming shows at its venue.
func (s *Store) ListUpcomingShows(ctx context.Context) ([]models.ShowListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, v.id, v.name, a.id, a.name, COALESCE(a.image_link, ''), s.start_time,
		       COUNT(*) OVER (PARTITION BY s.venue_id) AS num_shows
		FROM "Show" s
		JOIN "Venue" v ON v.id = s.venue_id
		JOIN "Artist" a ON a.id = s.artist_id
		WHERE s.start_time >= $1
		ORDER BY v.id, s.start_time, s.id
	`, s.today())
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	return scanShowListings(rows, true)
}

// SearchShows returns shows whose venue or artist name contains term, ignoring case.
func (s *Store) SearchShows(ctx context.Context, term string) ([]models.ShowListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, v.id, v.name, a.id, a.name, COALESCE(a.image_link, ''), s.start_time
		FROM "Show" s
		JOIN "Venue" v ON v.id = s.venue_id
		JOIN "Artist" a ON a.id = s.artist_id
		WHERE v.name ILIKE $1 OR a.name ILIKE $1
		ORDER BY s.start_time, s.id
	`, likePattern(term))
	if err != nil {
		return nil, fmt.Errorf("search shows: %w", err)
	}
	defer rows.Close()

	return scanShowListings(rows, false)
}

func scanShowListings(rows *sql.Rows, withCount bool) ([]models.ShowListing, error) {
	shows := make([]models.ShowListing, 0)
	for rows.Next() {
		var sh models.ShowListing
		dest := []any{
			&sh.ID, &sh.VenueID, &sh.VenueName, &sh.ArtistID, &sh.ArtistName,
			&sh.ArtistImageLink, &sh.StartsAt,
		}
		if withCount {
			dest = append(dest, &sh.NumShows)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		sh.ShowTime = models.NewShowTime(sh.StartsAt)
		shows = append(shows, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}
	return shows, nil
}
