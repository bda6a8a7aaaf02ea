package model

import (
	"encoding/json"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	return errs
}

func TestFindMovieFormRequiresTitle(t *testing.T) {
	f := FindMovieForm{Title: "   "}
	f.Normalize()

	errs := fieldErrors(t, f.Validate())
	assert.Contains(t, errs, "title")

	assert.NoError(t, FindMovieForm{Title: "Inception"}.Validate())
}

func TestEditMovieFormValidation(t *testing.T) {
	tests := []struct {
		name    string
		form    EditMovieForm
		invalid []string
	}{
		{"valid", EditMovieForm{Rating: "7.5", Review: "ok"}, nil},
		{"zero rating is allowed", EditMovieForm{Rating: "0", Review: "bad"}, nil},
		{"upper bound", EditMovieForm{Rating: "10", Review: "great"}, nil},
		{"missing both", EditMovieForm{}, []string{"rating", "review"}},
		{"not a number", EditMovieForm{Rating: "abc", Review: "x"}, []string{"rating"}},
		{"too high", EditMovieForm{Rating: "10.5", Review: "x"}, []string{"rating"}},
		{"negative", EditMovieForm{Rating: "-1", Review: "x"}, []string{"rating"}},
		{"NaN", EditMovieForm{Rating: "NaN", Review: "x"}, []string{"rating"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if len(tt.invalid) == 0 {
				assert.NoError(t, err)
				return
			}
			errs := fieldErrors(t, err)
			assert.Len(t, errs, len(tt.invalid))
			for _, field := range tt.invalid {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestEditMovieFormToRequest(t *testing.T) {
	req := EditMovieForm{Rating: "7.5", Review: "ok"}.ToRequest()

	require.NotNil(t, req.Rating)
	assert.Equal(t, 7.5, *req.Rating)
	assert.Equal(t, "ok", req.Review)
	assert.NoError(t, req.Validate())
}

func TestEditFormForPrefills(t *testing.T) {
	f := EditFormFor(&Movie{Rating: 8.25, Review: "solid"})
	assert.Equal(t, "8.25", f.Rating)
	assert.Equal(t, "solid", f.Review)
}

func TestUpdateReviewRequestValidation(t *testing.T) {
	high := 11.0
	errs := fieldErrors(t, UpdateReviewRequest{Rating: &high, Review: "x"}.Validate())
	assert.Contains(t, errs, "rating")

	errs = fieldErrors(t, UpdateReviewRequest{Review: "x"}.Validate())
	assert.Contains(t, errs, "rating")

	zero := 0.0
	assert.NoError(t, UpdateReviewRequest{Rating: &zero, Review: "x"}.Validate())
}

func TestImportMovieRequestAcceptsStringAndNumber(t *testing.T) {
	for _, body := range []string{`{"tmdb_id":"27205"}`, `{"tmdb_id":27205}`} {
		var req ImportMovieRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		assert.NoError(t, req.Validate())
		assert.Equal(t, "27205", req.ExternalID())
	}

	assert.Error(t, ImportMovieRequest{}.Validate())
	assert.Error(t, ImportMovieRequest{TMDBID: "12a"}.Validate())
}

func TestMovieValidate(t *testing.T) {
	poster := "https://image.tmdb.org/t/p/w500/x.jpg"
	ok := Movie{Title: "Inception", Year: 2010, ImgURL: &poster}
	assert.NoError(t, ok.Validate())

	unknownYear := Movie{Title: "Untitled", Year: 0}
	assert.NoError(t, unknownYear.Validate())

	earlyYear := Movie{Title: "Roundhay Garden Scene", Year: 1700}
	assert.NoError(t, earlyYear.Validate())

	farYear := Movie{Title: "Avatar 9", Year: 2200}
	assert.NoError(t, farYear.Validate())

	bad := "not a url"
	assert.Contains(t, fieldErrors(t, Movie{Title: "X", ImgURL: &bad}.Validate()), "img_url")

	assert.Contains(t, fieldErrors(t, Movie{}.Validate()), "title")
}

func TestMovieErrorsMatchSentinels(t *testing.T) {
	err := fmt.Errorf("repo: %w", NewMovieNotFound(7))
	assert.True(t, IsMovieNotFound(err))
	assert.False(t, IsMovieTitleExists(err))

	wrapped := NewCreateMovieError(NewMovieTitleExists("Inception"))
	assert.True(t, IsMovieTitleExists(wrapped))

	status, _, code := MapErrorToHTTP(wrapped)
	assert.Equal(t, 409, status)
	assert.Equal(t, CodeMovieTitleExists, code)

	status, _, code = MapErrorToHTTP(NewDeleteMovieError(fmt.Errorf("boom")))
	assert.Equal(t, 500, status)
	assert.Equal(t, CodeDeleteMovieError, code)

	status, _, _ = MapErrorToHTTP(fmt.Errorf("other"))
	assert.Equal(t, 500, status)
}
