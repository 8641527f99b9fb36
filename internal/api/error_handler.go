package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pagehub/pages-api/internal/core/domain"
)

// ErrorHandler maps domain errors onto HTTP statuses in one place so the
// handlers can return errors untranslated. Unknown errors become opaque 500s.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "internal server error"

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case errors.Is(err, domain.ErrInvalidRegistration):
			code, message = http.StatusBadRequest, err.Error()
		case errors.Is(err, domain.ErrUserExists):
			code, message = http.StatusConflict, domain.ErrUserExists.Error()
		case errors.Is(err, domain.ErrInvalidCredentials):
			code, message = http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
		case errors.Is(err, domain.ErrTooManyAttempts):
			code, message = http.StatusTooManyRequests, domain.ErrTooManyAttempts.Error()
		case errors.Is(err, domain.ErrUserNotFound):
			code, message = http.StatusNotFound, domain.ErrUserNotFound.Error()
		case errors.Is(err, domain.ErrPageNotFound):
			code, message = http.StatusNotFound, domain.ErrPageNotFound.Error()
		case errors.Is(err, domain.ErrPageExists):
			code, message = http.StatusConflict, domain.ErrPageExists.Error()
		default:
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		var respErr error
		if c.Request().Method == http.MethodHead {
			respErr = c.NoContent(code)
		} else {
			respErr = c.JSON(code, map[string]string{"error": message})
		}
		if respErr != nil {
			log.Error().Err(respErr).Msg("writing error response")
		}
	}
}
