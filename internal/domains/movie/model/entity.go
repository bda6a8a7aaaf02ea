package model

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Movie is one tracked film. Ranking is derived from the rating order and
// is never edited directly.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	Ranking     int       `json:"ranking"`
	Review      string    `json:"review"`
	ImgURL      *string   `json:"img_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Movie) String() string {
	return fmt.Sprintf("Movie %s - %d", m.Title, m.Year)
}

// PosterURL returns the image URL or "" when there is none.
func (m *Movie) PosterURL() string {
	if m.ImgURL == nil {
		return ""
	}
	return *m.ImgURL
}

// Validate checks a record before it is inserted. The year is stored as TMDB
// reports it, 0 when the release date is unknown.
func (m Movie) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&m.Rating,
			validation.Min(MinRating), validation.Max(MaxRating),
		),
		validation.Field(&m.ImgURL,
			validation.NilOrNotEmpty,
			validation.Length(1, MaxImgURLLength),
			is.URL,
		),
	)
}
