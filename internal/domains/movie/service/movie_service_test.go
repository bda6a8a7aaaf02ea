package service

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"movielist-backend/internal/domains/movie/gateway"
	gatewaymock "movielist-backend/internal/domains/movie/gateway/mock"
	"movielist-backend/internal/domains/movie/model"
)

type repoMock struct {
	mock.Mock
}

func (r *repoMock) Create(ctx context.Context, m *model.Movie) error {
	return r.Called(ctx, m).Error(0)
}

func (r *repoMock) ListByRating(ctx context.Context) ([]*model.Movie, error) {
	args := r.Called(ctx)
	movies, _ := args.Get(0).([]*model.Movie)
	return movies, args.Error(1)
}

func (r *repoMock) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	args := r.Called(ctx, id)
	m, _ := args.Get(0).(*model.Movie)
	return m, args.Error(1)
}

func (r *repoMock) Update(ctx context.Context, m *model.Movie) error {
	return r.Called(ctx, m).Error(0)
}

func (r *repoMock) Delete(ctx context.Context, id int64) error {
	return r.Called(ctx, id).Error(0)
}

func (r *repoMock) SaveRankings(ctx context.Context, rankings map[int64]int) error {
	return r.Called(ctx, rankings).Error(0)
}

func (r *repoMock) Count(ctx context.Context) (int, error) {
	args := r.Called(ctx)
	return args.Int(0), args.Error(1)
}

const imageBase = "https://image.tmdb.org/t/p/w500"

func newTestService(repo *repoMock) ServiceInterface {
	return NewService(repo, gatewaymock.NewCatalog(imageBase))
}

func storedMovies() []*model.Movie {
	return []*model.Movie{
		{ID: 2, Title: "The Matrix", Year: 1999, Rating: 6.5},
		{ID: 1, Title: "Inception", Year: 2010, Rating: 8.1},
		{ID: 3, Title: "Interstellar", Year: 2014, Rating: 9.2},
	}
}

func TestListMoviesDerivesRankingsWithoutWriting(t *testing.T) {
	repo := &repoMock{}
	repo.On("ListByRating", mock.Anything).Return(storedMovies(), nil)

	movies, err := newTestService(repo).ListMovies(context.Background())
	require.NoError(t, err)

	require.Len(t, movies, 3)
	assert.Equal(t, "The Matrix", movies[0].Title)
	assert.Equal(t, 1, movies[0].Ranking)
	assert.Equal(t, "Interstellar", movies[2].Title)
	assert.Equal(t, 3, movies[2].Ranking)

	repo.AssertNotCalled(t, "SaveRankings", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddFromExternalStoresAndRecomputesOnce(t *testing.T) {
	repo := &repoMock{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Movie")).
		Run(func(args mock.Arguments) {
			m := args.Get(1).(*model.Movie)
			m.ID = 4
			m.CreatedAt = time.Now()
		}).Return(nil).Once()
	repo.On("ListByRating", mock.Anything).Return([]*model.Movie{
		{ID: 4, Title: "Inception", Rating: 0},
		{ID: 2, Title: "The Matrix", Rating: 6.5},
	}, nil).Once()
	repo.On("SaveRankings", mock.Anything, map[int64]int{4: 1, 2: 2}).Return(nil).Once()

	movie, err := newTestService(repo).AddFromExternal(context.Background(), "27205")
	require.NoError(t, err)

	assert.Equal(t, int64(4), movie.ID)
	assert.Equal(t, "Inception", movie.Title)
	assert.Equal(t, 2010, movie.Year)
	assert.Equal(t, imageBase+"/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg", movie.PosterURL())
	repo.AssertExpectations(t)
}

func TestAddFromExternalStoresReportedYear(t *testing.T) {
	catalog := gatewaymock.NewCatalog(imageBase)
	catalog.Add(gateway.SearchHit{ID: 900001, Title: "Time Capsule", ReleaseDate: "2205-01-01"})

	repo := &repoMock{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Movie) bool {
		return m.Title == "Time Capsule" && m.Year == 2205
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Movie).ID = 11
	}).Return(nil).Once()
	repo.On("ListByRating", mock.Anything).Return([]*model.Movie{{ID: 11}}, nil)
	repo.On("SaveRankings", mock.Anything, map[int64]int{11: 1}).Return(nil)

	movie, err := NewService(repo, catalog).AddFromExternal(context.Background(), "900001")
	require.NoError(t, err)
	assert.Equal(t, 2205, movie.Year)
	repo.AssertExpectations(t)
}

func TestAddFromExternalDuplicateTitle(t *testing.T) {
	repo := &repoMock{}
	repo.On("Create", mock.Anything, mock.Anything).Return(model.NewMovieTitleExists("Inception"))

	_, err := newTestService(repo).AddFromExternal(context.Background(), "27205")
	assert.True(t, model.IsMovieTitleExists(err))

	repo.AssertNotCalled(t, "SaveRankings", mock.Anything, mock.Anything)
}

func TestAddFromExternalUnknownID(t *testing.T) {
	repo := &repoMock{}

	_, err := newTestService(repo).AddFromExternal(context.Background(), "424242")
	assert.ErrorIs(t, err, gateway.ErrExternalMovieNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateReviewChangesOnlyRatingAndReview(t *testing.T) {
	stored := &model.Movie{ID: 1, Title: "Inception", Year: 2010, Description: "dreams", Rating: 8.1, Review: "old"}

	repo := &repoMock{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(m *model.Movie) bool {
		return m.ID == 1 && m.Rating == 7.5 && m.Review == "ok" &&
			m.Title == "Inception" && m.Year == 2010 && m.Description == "dreams"
	})).Return(nil).Once()
	repo.On("ListByRating", mock.Anything).Return([]*model.Movie{stored}, nil)
	repo.On("SaveRankings", mock.Anything, map[int64]int{1: 1}).Return(nil)

	rating := 7.5
	updated, err := newTestService(repo).UpdateReview(context.Background(), 1, model.UpdateReviewRequest{Rating: &rating, Review: "ok"})
	require.NoError(t, err)

	assert.Equal(t, 7.5, updated.Rating)
	assert.Equal(t, "ok", updated.Review)
	repo.AssertExpectations(t)
}

func TestUpdateReviewRoundsRating(t *testing.T) {
	repo := &repoMock{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(&model.Movie{ID: 1, Title: "Inception"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	repo.On("ListByRating", mock.Anything).Return([]*model.Movie{}, nil)
	repo.On("SaveRankings", mock.Anything, mock.Anything).Return(nil)

	rating := 7.26
	updated, err := newTestService(repo).UpdateReview(context.Background(), 1, model.UpdateReviewRequest{Rating: &rating, Review: "ok"})
	require.NoError(t, err)
	assert.Equal(t, 7.3, updated.Rating)
}

func TestUpdateReviewRejectsInvalidInput(t *testing.T) {
	repo := &repoMock{}

	rating := 12.0
	_, err := newTestService(repo).UpdateReview(context.Background(), 1, model.UpdateReviewRequest{Rating: &rating})

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "rating")
	assert.Contains(t, errs, "review")
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateReviewUnknownMovie(t *testing.T) {
	repo := &repoMock{}
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, model.NewMovieNotFound(9))

	rating := 5.0
	_, err := newTestService(repo).UpdateReview(context.Background(), 9, model.UpdateReviewRequest{Rating: &rating, Review: "x"})
	assert.True(t, model.IsMovieNotFound(err))
}

func TestDeleteMovieUnknownIDIsNotFound(t *testing.T) {
	repo := &repoMock{}
	repo.On("Delete", mock.Anything, int64(99)).Return(model.NewMovieNotFound(99))

	err := newTestService(repo).DeleteMovie(context.Background(), 99)
	assert.True(t, model.IsMovieNotFound(err))
	repo.AssertNotCalled(t, "SaveRankings", mock.Anything, mock.Anything)
}

func TestDeleteMovieSurfacesPersistenceFailure(t *testing.T) {
	repo := &repoMock{}
	repo.On("Delete", mock.Anything, int64(1)).Return(model.NewDeleteMovieError(errors.New("connection reset")))

	err := newTestService(repo).DeleteMovie(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, model.CodeDeleteMovieError, model.GetErrorCode(err))
}

func TestDeleteMovieSucceedsEvenIfRankingRefreshFails(t *testing.T) {
	repo := &repoMock{}
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)
	repo.On("ListByRating", mock.Anything).Return([]*model.Movie{{ID: 2, Rating: 3}}, nil)
	repo.On("SaveRankings", mock.Anything, mock.Anything).Return(model.NewRankingError(errors.New("deadlock")))

	assert.NoError(t, newTestService(repo).DeleteMovie(context.Background(), 1))
	repo.AssertExpectations(t)
}

func TestRecomputeRankingsBatchesAllMovies(t *testing.T) {
	repo := &repoMock{}
	repo.On("ListByRating", mock.Anything).Return(storedMovies(), nil)
	repo.On("SaveRankings", mock.Anything, map[int64]int{2: 1, 1: 2, 3: 3}).Return(nil).Once()

	movies, err := newTestService(repo).RecomputeRankings(context.Background())
	require.NoError(t, err)
	assert.Len(t, movies, 3)
	repo.AssertExpectations(t)
}

func TestSearchExternalOutcomes(t *testing.T) {
	svc := newTestService(&repoMock{})

	res, err := svc.SearchExternal(context.Background(), "inception")
	require.NoError(t, err)
	assert.Equal(t, int64(27205), res.Results[0].ID)

	_, err = svc.SearchExternal(context.Background(), "no such film")
	assert.ErrorIs(t, err, gateway.ErrNoResults)

	_, err = svc.SearchExternal(context.Background(), "error")
	assert.ErrorIs(t, err, gateway.ErrUpstream)
}

func TestExportMoviesWritesBestFirst(t *testing.T) {
	repo := &repoMock{}
	repo.On("ListByRating", mock.Anything).Return(storedMovies(), nil)

	f, err := newTestService(repo).ExportMovies(context.Background())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Ranking", rows[0][0])
	assert.Equal(t, []string{"3", "Interstellar"}, rows[1][:2])
	assert.Equal(t, []string{"1", "The Matrix"}, rows[3][:2])
}
