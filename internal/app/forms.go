package app

import (
	"net/url"
	"strings"
)

// SeekingFlag reads a seeking checkbox. A missing or empty field counts as
// set, as does the checkbox marker "y"; any other value clears it.
func SeekingFlag(form url.Values, key string) bool {
	value := strings.TrimSpace(form.Get(key))
	return value == "" || value == "y"
}

// FormString returns the trimmed value of key.
func FormString(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// FormList returns the trimmed, non-empty values of a multi-value field in
// submission order, without duplicates.
func FormList(form url.Values, key string) []string {
	values := make([]string, 0, len(form[key]))
	seen := make(map[string]struct{}, len(form[key]))
	for _, raw := range form[key] {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}
