package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS returns middleware that applies CORS headers for the configured
// origins. An empty list disables CORS headers; "*" allows any origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	opts := []handlers.CORSOption{
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Accept", "Content-Type", "X-Request-ID", handlers.HTTPMethodOverrideHeader}),
		handlers.MaxAge(3600),
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			return handlers.CORS(opts...)
		}
	}
	return handlers.CORS(append(opts, handlers.AllowCredentials())...)
}

// MethodOverride lets HTML forms reach DELETE routes by posting a _method
// field or an X-HTTP-Method-Override header.
func MethodOverride(next http.Handler) http.Handler {
	return handlers.HTTPMethodOverrideHandler(next)
}
