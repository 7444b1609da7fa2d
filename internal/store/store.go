package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"fyyur/internal/models"
)

var (
	// ErrNotFound is wrapped by every entity-specific not-found error.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate signals a unique name or phone collision.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidReference signals a show pointing at a missing venue or artist.
	ErrInvalidReference = errors.New("invalid reference")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the clock used to split past and upcoming shows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// today is the boundary between past and upcoming shows for the current read.
func (s *Store) today() time.Time {
	return models.Today(s.now())
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a search term into an ILIKE substring pattern. An empty
// term yields "%%", which matches every row.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// nullIfEmpty keeps blank optional unique columns out of the unique index.
func nullIfEmpty(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
