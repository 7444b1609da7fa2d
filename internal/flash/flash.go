// Package flash carries one-shot notices across a redirect in a signed cookie.
package flash

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	cookieName = "fyyur_flash"
	defaultTTL = 5 * time.Minute
)

// Categories of a notice, used for styling.
const (
	CategorySuccess = "success"
	CategoryError   = "error"
)

// Message is a single notice.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Success builds a success notice.
func Success(format string, args ...any) Message {
	return Message{Category: CategorySuccess, Text: fmt.Sprintf(format, args...)}
}

// Error builds a failure notice.
func Error(format string, args ...any) Message {
	return Message{Category: CategoryError, Text: fmt.Sprintf(format, args...)}
}

type claims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

// Store signs and verifies flash cookies.
type Store struct {
	key    []byte
	ttl    time.Duration
	secure bool
}

// NewStore derives the cookie signing key from secret.
func NewStore(secret string, secure bool) (*Store, error) {
	if secret == "" {
		return nil, errors.New("flash: secret is required")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("fyyur flash cookie"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("flash: derive key: %w", err)
	}

	return &Store{key: key, ttl: defaultTTL, secure: secure}, nil
}

// Add appends messages to those already pending on r and writes the cookie.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, messages ...Message) error {
	pending := append(s.read(r), messages...)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages: pending,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return fmt.Errorf("flash: sign cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending messages and clears the cookie.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	if _, err := r.Cookie(cookieName); err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s.read(r)
}

// read returns the messages of a valid cookie. Missing, expired and tampered
// cookies yield nothing.
func (s *Store) read(r *http.Request) []Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var c claims
	_, err = jwt.ParseWithClaims(cookie.Value, &c, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}
	return c.Messages
}
