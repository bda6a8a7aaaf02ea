package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"movielist-backend/internal/domains/movie/gateway"
	"movielist-backend/internal/domains/movie/model"
	"movielist-backend/internal/shared/response"
	"movielist-backend/pkg/logger"
)

// mapError resolves any error produced by the movie workflow to status,
// message and code.
func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, gateway.ErrNoResults):
		return http.StatusNotFound, "No films found.", "NO_RESULTS"
	case errors.Is(err, gateway.ErrExternalMovieNotFound):
		return http.StatusNotFound, "Failed to find movie in the database.", "EXTERNAL_MOVIE_NOT_FOUND"
	case errors.Is(err, gateway.ErrUpstream):
		return http.StatusBadGateway, "Error while trying to get movies.", "UPSTREAM_ERROR"
	default:
		return model.MapErrorToHTTP(err)
	}
}

// respondError writes a JSON error, expanding validation failures into
// per-field details.
func respondError(c *gin.Context, err error) {
	if details := fieldErrors(err); details != nil {
		response.ValidationError(c, details)
		return
	}

	status, message, code := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorWithFields("movie api request failed", err, map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		})
	}
	response.ErrorResponse(c, status, code, message)
}

// fieldErrors flattens ozzo validation errors to field -> message.
// Returns nil when err is not a validation failure.
func fieldErrors(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil
	}

	out := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		out[field] = fieldErr.Error()
	}
	return out
}
