package mock

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"movielist-backend/internal/domains/movie/gateway"
	"movielist-backend/internal/domains/movie/model"
)

// =====================================================
// OFFLINE TMDB CATALOG FOR DEVELOPMENT AND TESTS
// =====================================================

// Catalog is a small in-memory stand-in for TMDB. Titles containing
// "error" simulate an upstream failure.
type Catalog struct {
	imageBaseURL string
	movies       []gateway.SearchHit
}

var _ gateway.MovieSearcher = (*Catalog)(nil)

func NewCatalog(imageBaseURL string) *Catalog {
	return &Catalog{
		imageBaseURL: imageBaseURL,
		movies: []gateway.SearchHit{
			{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-16", PosterPath: "/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg",
				Overview: "Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets, is offered a chance to regain his old life."},
			{ID: 157336, Title: "Interstellar", ReleaseDate: "2014-11-05", PosterPath: "/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
				Overview: "The adventures of a group of explorers who make use of a newly discovered wormhole to surpass the limitations on human space travel."},
			{ID: 155, Title: "The Dark Knight", ReleaseDate: "2008-07-16", PosterPath: "/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
				Overview: "Batman raises the stakes in his war on crime."},
			{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", PosterPath: "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
				Overview: "A computer hacker learns about the true nature of reality."},
			{ID: 680, Title: "Pulp Fiction", ReleaseDate: "1994-09-10", PosterPath: "/d5iIlFn5s0ImszYzBPb8JPIfbXD.jpg",
				Overview: "The lives of two mob hitmen, a boxer and a pair of diner bandits intertwine."},
		},
	}
}

// Add registers an extra catalog entry.
func (c *Catalog) Add(hit gateway.SearchHit) {
	c.movies = append(c.movies, hit)
}

func (c *Catalog) SearchByTitle(ctx context.Context, title string) (*gateway.SearchResult, error) {
	query := strings.ToLower(strings.TrimSpace(title))
	if strings.Contains(query, "error") {
		return nil, fmt.Errorf("%w: mock upstream failure", gateway.ErrUpstream)
	}

	res := &gateway.SearchResult{Page: 1}
	for _, hit := range c.movies {
		if strings.Contains(strings.ToLower(hit.Title), query) {
			res.Results = append(res.Results, hit)
		}
	}
	if len(res.Results) == 0 {
		return nil, gateway.ErrNoResults
	}
	res.TotalResults = len(res.Results)
	return res, nil
}

func (c *Catalog) FetchByExternalID(ctx context.Context, externalID string) (*model.Movie, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(externalID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", gateway.ErrExternalMovieNotFound, externalID)
	}

	for _, hit := range c.movies {
		if hit.ID != id {
			continue
		}
		year, _ := strconv.Atoi(hit.Year())
		m := &model.Movie{Title: hit.Title, Year: year, Description: hit.Overview}
		if hit.PosterPath != "" {
			img := c.imageBaseURL + hit.PosterPath
			m.ImgURL = &img
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %s", gateway.ErrExternalMovieNotFound, externalID)
}
