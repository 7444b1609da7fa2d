package httpapi

import (
	"net/http"

	"fyyur/internal/app"
	"fyyur/internal/flash"
	"fyyur/internal/logging"
)

// formFailure maps a failed form submission to its response status. Failures
// other than validation are logged and reported through notice.
func formFailure(r *http.Request, err error, notice flash.Message) (int, []flash.Message) {
	kind := app.KindOf(err)
	logger := logging.WithContext(r.Context())

	switch kind {
	case app.KindValidation:
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("form validation failed")
		return http.StatusUnprocessableEntity, nil
	case app.KindConflict:
		logger.Warn().Err(err).Str("path", r.URL.Path).Msg("form rejected by unique constraint")
		return http.StatusConflict, []flash.Message{notice}
	case app.KindInvalidReference:
		logger.Warn().Err(err).Str("path", r.URL.Path).Msg("form references a missing record")
		return http.StatusBadRequest, []flash.Message{notice}
	default:
		logger.Error().Err(err).Str("kind", kind.String()).Str("path", r.URL.Path).Msg("failed to store form")
		return http.StatusInternalServerError, []flash.Message{notice}
	}
}
