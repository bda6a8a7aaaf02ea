package tmdb

import (
	"errors"
	"strings"
	"time"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage     = "en-US"
	DefaultTimeout      = 10 * time.Second
)

// Config holds TMDB credentials and endpoints.
type Config struct {
	APIToken     string // v4 read access token
	BaseURL      string
	ImageBaseURL string
	Language     string
	Timeout      time.Duration
}

func (c *Config) applyDefaults() {
	c.APIToken = strings.TrimSpace(c.APIToken)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.ImageBaseURL = strings.TrimSpace(c.ImageBaseURL)
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = DefaultImageBaseURL
	}
	c.Language = strings.TrimSpace(c.Language)
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

func (c Config) validate() error {
	if c.APIToken == "" {
		return errors.New("tmdb api token required")
	}
	return nil
}
