package models

// GenreChoices lists the genres a venue or artist can pick from.
var GenreChoices = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

// StateChoices lists the US state codes accepted for venues and artists.
var StateChoices = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

// IsGenre reports whether g is one of GenreChoices.
func IsGenre(g string) bool {
	for _, c := range GenreChoices {
		if c == g {
			return true
		}
	}
	return false
}

// IsState reports whether s is one of StateChoices.
func IsState(s string) bool {
	for _, c := range StateChoices {
		if c == s {
			return true
		}
	}
	return false
}
