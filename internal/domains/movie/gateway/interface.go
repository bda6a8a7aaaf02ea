package gateway

import (
	"context"
	"errors"
	"strings"

	"movielist-backend/internal/domains/movie/model"
)

// =====================================================
// GATEWAY INTERFACES
// =====================================================

// MovieSearcher looks movies up in an external metadata service.
type MovieSearcher interface {
	// SearchByTitle returns the first page of matches.
	// ErrNoResults when the service answered but found nothing,
	// ErrUpstream for non-200 responses and transport failures.
	SearchByTitle(ctx context.Context, title string) (*SearchResult, error)

	// FetchByExternalID builds an unsaved Movie from the detail endpoint.
	// ErrExternalMovieNotFound on any non-200 response.
	FetchByExternalID(ctx context.Context, externalID string) (*model.Movie, error)
}

var (
	ErrNoResults             = errors.New("no films found")
	ErrUpstream              = errors.New("movie search service failed")
	ErrExternalMovieNotFound = errors.New("movie not found in external database")
)

// =====================================================
// RESPONSE TYPES
// =====================================================

// SearchHit is one entry of a title search.
type SearchHit struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

// Year is the leading token of ReleaseDate ("2010-07-16" -> "2010").
func (h SearchHit) Year() string {
	return ReleaseYearToken(h.ReleaseDate)
}

// SearchResult is one page of matches.
type SearchResult struct {
	Page         int         `json:"page"`
	Results      []SearchHit `json:"results"`
	TotalResults int         `json:"total_results"`
}

// ReleaseYearToken returns the part of a date before the first "-".
func ReleaseYearToken(date string) string {
	token, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	return token
}
