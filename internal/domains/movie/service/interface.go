package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"movielist-backend/internal/domains/movie/gateway"
	"movielist-backend/internal/domains/movie/model"
)

// ServiceInterface is the movie workflow used by the HTML and JSON handlers.
type ServiceInterface interface {
	// ListMovies returns every movie ascending by rating with rankings
	// derived on the fly. It never writes.
	ListMovies(ctx context.Context) ([]*model.Movie, error)
	GetMovie(ctx context.Context, id int64) (*model.Movie, error)

	SearchExternal(ctx context.Context, title string) (*gateway.SearchResult, error)
	AddFromExternal(ctx context.Context, externalID string) (*model.Movie, error)

	UpdateReview(ctx context.Context, id int64, req model.UpdateReviewRequest) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error

	// RecomputeRankings persists the derived rankings in one transaction.
	RecomputeRankings(ctx context.Context) ([]*model.Movie, error)

	ExportMovies(ctx context.Context) (*excelize.File, error)
}
