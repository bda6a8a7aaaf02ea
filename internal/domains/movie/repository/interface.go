package repository

import (
	"context"

	"movielist-backend/internal/domains/movie/model"
)

// Repository is the movie record store.
type Repository interface {
	// Create inserts m and fills ID and timestamps.
	// Returns model.ErrMovieTitleExists when the title is taken.
	Create(ctx context.Context, m *model.Movie) error

	// ListByRating returns every movie ascending by rating, ties by id.
	ListByRating(ctx context.Context) ([]*model.Movie, error)

	// GetByID returns model.ErrMovieNotFound when absent.
	GetByID(ctx context.Context, id int64) (*model.Movie, error)

	// Update writes rating and review only.
	Update(ctx context.Context, m *model.Movie) error

	// Delete removes one movie inside a transaction.
	Delete(ctx context.Context, id int64) error

	// SaveRankings persists id -> ranking in a single transaction.
	SaveRankings(ctx context.Context, rankings map[int64]int) error

	Count(ctx context.Context) (int, error)
}
