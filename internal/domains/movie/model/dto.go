package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// =====================================================
// HTML FORMS
// =====================================================

// FindMovieForm is the title search form on /add_movie.
type FindMovieForm struct {
	Title string `form:"title" json:"title"`
}

func (f *FindMovieForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
}

func (f FindMovieForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
	)
}

// EditMovieForm is the rating/review form on /edit_movie/:id. Fields are
// bound as raw strings so the form can be re-rendered with what was typed.
type EditMovieForm struct {
	Rating string `form:"rating" json:"rating"`
	Review string `form:"review" json:"review"`
}

func (f *EditMovieForm) Normalize() {
	f.Rating = strings.TrimSpace(f.Rating)
	f.Review = strings.TrimSpace(f.Review)
}

func (f EditMovieForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Rating,
			validation.Required.Error("rating is required"),
			validation.By(ratingString),
		),
		validation.Field(&f.Review,
			validation.Required.Error("review is required"),
		),
	)
}

// ToRequest converts a validated form. Call Validate first.
func (f EditMovieForm) ToRequest() UpdateReviewRequest {
	rating, _ := strconv.ParseFloat(f.Rating, 64)
	return UpdateReviewRequest{Rating: &rating, Review: f.Review}
}

// EditFormFor pre-fills the edit form from a stored movie.
func EditFormFor(m *Movie) EditMovieForm {
	return EditMovieForm{
		Rating: strconv.FormatFloat(m.Rating, 'f', -1, 64),
		Review: m.Review,
	}
}

func ratingString(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return validation.NewError("validation_rating_number", "rating must be a number")
	}
	if r < MinRating || r > MaxRating {
		return validation.NewError("validation_rating_range", "rating must be between 0 and 10")
	}
	return nil
}

// =====================================================
// JSON REQUESTS
// =====================================================

// UpdateReviewRequest changes the two user-editable fields.
type UpdateReviewRequest struct {
	Rating *float64 `json:"rating"`
	Review string   `json:"review"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.NotNil.Error("rating is required"),
			validation.Min(MinRating), validation.Max(MaxRating),
		),
		validation.Field(&r.Review,
			validation.Required.Error("review is required"),
		),
	)
}

// ImportMovieRequest adds a movie by its TMDB id. Both "27205" and 27205
// are accepted.
type ImportMovieRequest struct {
	TMDBID json.Number `json:"tmdb_id"`
}

func (r ImportMovieRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TMDBID,
			validation.Required.Error("tmdb_id is required"),
			is.Digit,
		),
	)
}

func (r ImportMovieRequest) ExternalID() string {
	return r.TMDBID.String()
}
