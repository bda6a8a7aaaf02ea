// Package tmdb talks to The Movie Database v3 API with a bearer token.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movielist-backend/internal/domains/movie/gateway"
	"movielist-backend/internal/domains/movie/model"
)

// movieDetails is the subset of /movie/{id} that becomes a record.
type movieDetails struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
}

// Client provides access to the TMDB API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

var _ gateway.MovieSearcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client. The HTTP client times out after cfg.Timeout.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchByTitle queries /search/movie and returns the first page.
func (c *Client) SearchByTitle(ctx context.Context, title string) (*gateway.SearchResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}

	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	params.Set("language", c.cfg.Language)
	params.Set("page", "1")

	var payload gateway.SearchResult
	status, latency, err := c.get(ctx, "/search/movie", params, &payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUpstream, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: tmdb search returned %d (latency=%v)", gateway.ErrUpstream, status, latency)
	}
	if len(payload.Results) == 0 {
		return nil, gateway.ErrNoResults
	}
	return &payload, nil
}

// FetchByExternalID loads /movie/{id} and maps it to an unsaved Movie.
func (c *Client) FetchByExternalID(ctx context.Context, externalID string) (*model.Movie, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, fmt.Errorf("%w: empty id", gateway.ErrExternalMovieNotFound)
	}

	params := url.Values{}
	params.Set("language", c.cfg.Language)

	var payload movieDetails
	status, latency, err := c.get(ctx, "/movie/"+url.PathEscape(externalID), params, &payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gateway.ErrUpstream, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: tmdb movie %s returned %d (latency=%v)",
			gateway.ErrExternalMovieNotFound, externalID, status, latency)
	}

	return c.toMovie(payload), nil
}

func (c *Client) toMovie(d movieDetails) *model.Movie {
	// "2010-07-16" -> 2010; missing or malformed dates become 0.
	year, _ := strconv.Atoi(gateway.ReleaseYearToken(d.ReleaseDate))

	m := &model.Movie{
		Title:       strings.TrimSpace(d.Title),
		Year:        year,
		Description: d.Overview,
	}
	if d.PosterPath != "" {
		img := c.cfg.ImageBaseURL + d.PosterPath
		m.ImgURL = &img
	}
	return m
}

// get performs an authenticated GET. Non-200 bodies are drained and
// reported through status; only a 200 body is decoded into dest.
func (c *Client) get(ctx context.Context, path string, params url.Values, dest interface{}) (int, time.Duration, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL + path)
	if err != nil {
		return 0, 0, fmt.Errorf("parse tmdb url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return 0, latency, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, latency, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, latency, fmt.Errorf("decode tmdb response: %w", err)
	}
	return resp.StatusCode, latency, nil
}
