package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the uniform error payload returned to clients.
type ErrorBody struct {
	Message string `json:"message"`
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := Classify(err)
		if status >= http.StatusInternalServerError {
			slog.Error("Request failed", "uri", c.Request().RequestURI, "error", err)
		}
		_ = c.JSON(status, ErrorBody{Message: msg})
	}
}

// Classify maps an error to a status code and a client-safe message. Causes
// of server-side failures are never exposed.
func Classify(err error) (int, string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	var ae *AuthError
	if errors.As(err, &ae) {
		return http.StatusInternalServerError, fmt.Sprintf("Error authenticating with %s", ae.Provider)
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		if ue.Provider == ProviderPrice {
			return http.StatusInternalServerError, "Error fetching price history"
		}
		return http.StatusInternalServerError, fmt.Sprintf("Error fetching %s articles", ue.Provider)
	}

	var pe *PersistenceError
	if errors.As(err, &pe) {
		return http.StatusInternalServerError, "Error accessing article storage"
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	return http.StatusInternalServerError, "internal server error"
}
