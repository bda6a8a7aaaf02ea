package model

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeMovieNotFound     = "MOVIE_NOT_FOUND"
	CodeMovieTitleExists  = "MOVIE_TITLE_EXISTS"
	CodeInvalidMovieID    = "INVALID_MOVIE_ID"
	CodeInvalidMovie      = "INVALID_MOVIE"
	CodeCreateMovieError  = "CREATE_MOVIE_ERROR"
	CodeUpdateMovieError  = "UPDATE_MOVIE_ERROR"
	CodeDeleteMovieError  = "DELETE_MOVIE_ERROR"
	CodeListMovieError    = "LIST_MOVIE_ERROR"
	CodeRankingError      = "RANKING_ERROR"
	CodeExportMovieError  = "EXPORT_MOVIE_ERROR"
	CodeUnknownMovieError = "UNKNOWN_ERROR"
)

// MovieError is the domain error for the movie store.
type MovieError struct {
	Code    string
	Message string
	Err     error
}

func (e *MovieError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *MovieError) Unwrap() error {
	return e.Err
}

// Is matches any MovieError with the same code, so factory-built errors
// compare equal to the sentinels below.
func (e *MovieError) Is(target error) bool {
	var t *MovieError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrMovieNotFound = &MovieError{
		Code:    CodeMovieNotFound,
		Message: "Movie not found",
	}

	// ErrMovieTitleExists is the uniqueness violation on title.
	ErrMovieTitleExists = &MovieError{
		Code:    CodeMovieTitleExists,
		Message: "A movie with this title already exists",
	}

	ErrInvalidMovieID = &MovieError{
		Code:    CodeInvalidMovieID,
		Message: "Invalid movie ID",
	}
)

func NewMovieNotFound(id int64) *MovieError {
	return &MovieError{
		Code:    CodeMovieNotFound,
		Message: fmt.Sprintf("Movie %d not found", id),
	}
}

func NewMovieTitleExists(title string) *MovieError {
	return &MovieError{
		Code:    CodeMovieTitleExists,
		Message: fmt.Sprintf("A movie titled '%s' is already in the list", title),
	}
}

func NewInvalidMovieID(raw string) *MovieError {
	return &MovieError{
		Code:    CodeInvalidMovieID,
		Message: fmt.Sprintf("Invalid movie ID: %s", raw),
	}
}

func NewInvalidMovie(err error) *MovieError {
	return &MovieError{
		Code:    CodeInvalidMovie,
		Message: "Movie record is invalid",
		Err:     err,
	}
}

func NewCreateMovieError(err error) *MovieError {
	return &MovieError{
		Code:    CodeCreateMovieError,
		Message: "Failed to create movie",
		Err:     err,
	}
}

func NewUpdateMovieError(err error) *MovieError {
	return &MovieError{
		Code:    CodeUpdateMovieError,
		Message: "Failed to update movie",
		Err:     err,
	}
}

func NewDeleteMovieError(err error) *MovieError {
	return &MovieError{
		Code:    CodeDeleteMovieError,
		Message: "Failed to delete movie",
		Err:     err,
	}
}

func NewListMovieError(err error) *MovieError {
	return &MovieError{
		Code:    CodeListMovieError,
		Message: "Failed to list movies",
		Err:     err,
	}
}

func NewRankingError(err error) *MovieError {
	return &MovieError{
		Code:    CodeRankingError,
		Message: "Failed to save rankings",
		Err:     err,
	}
}

func NewExportMovieError(err error) *MovieError {
	return &MovieError{
		Code:    CodeExportMovieError,
		Message: "Failed to export movies",
		Err:     err,
	}
}

func IsMovieNotFound(err error) bool {
	return errors.Is(err, ErrMovieNotFound)
}

func IsMovieTitleExists(err error) bool {
	return errors.Is(err, ErrMovieTitleExists)
}

func IsDomainError(err error) bool {
	var movieErr *MovieError
	return errors.As(err, &movieErr)
}

func GetErrorCode(err error) string {
	var movieErr *MovieError
	if errors.As(err, &movieErr) {
		return movieErr.Code
	}
	return CodeUnknownMovieError
}

func GetErrorMessage(err error) string {
	var movieErr *MovieError
	if errors.As(err, &movieErr) {
		return movieErr.Message
	}
	return err.Error()
}

// MapErrorToHTTP maps a movie domain error to status, message and code.
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	switch {
	case IsMovieNotFound(err):
		return http.StatusNotFound, GetErrorMessage(err), CodeMovieNotFound

	case IsMovieTitleExists(err):
		return http.StatusConflict, GetErrorMessage(err), CodeMovieTitleExists

	case IsDomainError(err):
		switch code := GetErrorCode(err); code {
		case CodeInvalidMovieID, CodeInvalidMovie:
			return http.StatusBadRequest, GetErrorMessage(err), code
		default:
			return http.StatusInternalServerError, GetErrorMessage(err), code
		}

	default:
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}
}
