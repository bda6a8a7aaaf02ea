package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"movielist-backend/internal/domains/movie/gateway"
	"movielist-backend/internal/domains/movie/model"
	"movielist-backend/internal/domains/movie/repository"
	"movielist-backend/internal/shared/utils"
	"movielist-backend/pkg/logger"
)

type MovieService struct {
	repo     repository.Repository
	searcher gateway.MovieSearcher
}

// NewService - Constructor with DI
func NewService(repo repository.Repository, searcher gateway.MovieSearcher) ServiceInterface {
	return &MovieService{
		repo:     repo,
		searcher: searcher,
	}
}

func (s *MovieService) ListMovies(ctx context.Context) ([]*model.Movie, error) {
	movies, err := s.repo.ListByRating(ctx)
	if err != nil {
		return nil, err
	}

	model.SortByRating(movies)
	model.AssignRankings(movies)
	return movies, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id int64) (*model.Movie, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MovieService) SearchExternal(ctx context.Context, title string) (*gateway.SearchResult, error) {
	res, err := s.searcher.SearchByTitle(ctx, title)
	if err != nil {
		logger.Info("external search returned no usable results", map[string]interface{}{
			"title": title,
			"error": err.Error(),
		})
		return nil, err
	}
	return res, nil
}

// AddFromExternal resolves a TMDB id and stores the resulting movie.
func (s *MovieService) AddFromExternal(ctx context.Context, externalID string) (*model.Movie, error) {
	movie, err := s.searcher.FetchByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if err := movie.Validate(); err != nil {
		return nil, model.NewInvalidMovie(err)
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	logger.Info("movie added", map[string]interface{}{
		"movie_id":    movie.ID,
		"external_id": externalID,
		"title":       movie.Title,
	})

	s.refreshRankings(ctx, "create")
	return movie, nil
}

// UpdateReview changes rating and review only. The rating is rounded to one
// decimal place before it is stored.
func (s *MovieService) UpdateReview(ctx context.Context, id int64, req model.UpdateReviewRequest) (*model.Movie, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Rating = utils.RoundRating(*req.Rating)
	movie.Review = req.Review

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, err
	}

	s.refreshRankings(ctx, "update")
	return movie, nil
}

// DeleteMovie removes one movie. Persistence failures are returned to the
// caller after the repository has rolled back.
func (s *MovieService) DeleteMovie(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !model.IsMovieNotFound(err) {
			logger.ErrorWithFields("failed to delete movie", err, map[string]interface{}{
				"movie_id": id,
			})
		}
		return err
	}

	logger.Info("movie deleted", map[string]interface{}{"movie_id": id})
	s.refreshRankings(ctx, "delete")
	return nil
}

func (s *MovieService) RecomputeRankings(ctx context.Context) ([]*model.Movie, error) {
	movies, err := s.ListMovies(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveRankings(ctx, model.RankingsByID(movies)); err != nil {
		return nil, err
	}
	return movies, nil
}

func (s *MovieService) ExportMovies(ctx context.Context) (*excelize.File, error) {
	movies, err := s.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	f, err := buildMoviesExcelFile(movies)
	if err != nil {
		return nil, model.NewExportMovieError(err)
	}
	return f, nil
}

// refreshRankings keeps the stored ranking column in step after a mutation.
// The list view derives rankings itself, so a failure here is only logged.
func (s *MovieService) refreshRankings(ctx context.Context, op string) {
	if _, err := s.RecomputeRankings(ctx); err != nil {
		logger.ErrorWithFields("failed to refresh rankings", err, map[string]interface{}{
			"operation": op,
		})
	}
}
