package main

import (
	"net/http"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/config"
	"fyyur/internal/flash"
	"fyyur/internal/http/middleware"
	"fyyur/internal/httpapi"
	"fyyur/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store) (http.Handler, *middleware.RateLimiter, error) {
	notices, err := flash.NewStore(cfg.Security.SessionSecret, cfg.IsProduction())
	if err != nil {
		return nil, nil, err
	}

	metrics := middleware.NewMetrics()
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	opts := []httpapi.Option{
		httpapi.WithMiddleware(
			metrics.Middleware,
			middleware.CORS(cfg.CORS.AllowedOrigins),
			limiter.Middleware,
		),
		httpapi.WithMetricsHandler(metrics.Handler()),
	}
	if cfg.Server.TrustProxy {
		opts = append(opts, httpapi.WithProxyHeaders())
	}

	server := httpapi.New(
		venues.New(dataStore),
		artists.New(dataStore),
		shows.New(dataStore),
		notices,
		opts...,
	)

	return server.Routes(), limiter, nil
}
