package store

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// EncodeGenres serialises genres into the brace/quote form stored in the
// genres column, e.g. {"Jazz","Rock n Roll"}.
func EncodeGenres(genres []string) (string, error) {
	if len(genres) == 0 {
		return "{}", nil
	}
	value, err := pq.StringArray(genres).Value()
	if err != nil {
		return "", fmt.Errorf("encode genres: %w", err)
	}
	encoded, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("encode genres: unexpected value %T", value)
	}
	return encoded, nil
}

var genreStripper = strings.NewReplacer("{", "", "}", "", `"`, "")

// DecodeGenres reverses EncodeGenres. It also accepts the unquoted form
// Postgres produces when casting a text array, e.g. {Jazz,Rock}.
func DecodeGenres(raw string) []string {
	stripped := genreStripper.Replace(raw)
	if stripped == "" {
		return []string{}
	}
	return strings.Split(stripped, ",")
}
