package model

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moviesWithRatings(ratings ...float64) []*Movie {
	out := make([]*Movie, len(ratings))
	for i, r := range ratings {
		out[i] = &Movie{ID: int64(i + 1), Title: string(rune('A' + i)), Rating: r}
	}
	return out
}

func TestAssignRankingsHighestGetsN(t *testing.T) {
	movies := moviesWithRatings(7.5, 9.1, 3.2, 8.0)
	SortByRating(movies)
	AssignRankings(movies)

	byRating := map[float64]int{}
	for _, m := range movies {
		byRating[m.Rating] = m.Ranking
	}
	assert.Equal(t, 4, byRating[9.1])
	assert.Equal(t, 3, byRating[8.0])
	assert.Equal(t, 2, byRating[7.5])
	assert.Equal(t, 1, byRating[3.2])
}

func TestAssignRankingsIsPermutation(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 30; n++ {
		ratings := r.Perm(n)
		fs := make([]float64, n)
		for i, v := range ratings {
			fs[i] = float64(v) / 3
		}
		movies := moviesWithRatings(fs...)
		SortByRating(movies)
		AssignRankings(movies)

		got := make([]int, 0, n)
		for _, m := range movies {
			got = append(got, m.Ranking)
		}
		sort.Ints(got)
		for i := range got {
			require.Equal(t, i+1, got[i], "n=%d", n)
		}
	}
}

func TestSortByRatingBreaksTiesByID(t *testing.T) {
	movies := []*Movie{
		{ID: 3, Rating: 5},
		{ID: 1, Rating: 5},
		{ID: 2, Rating: 1},
	}
	SortByRating(movies)

	assert.Equal(t, []int64{2, 1, 3}, []int64{movies[0].ID, movies[1].ID, movies[2].ID})
}

func TestAssignRankingsEmpty(t *testing.T) {
	AssignRankings(nil)
	assert.Empty(t, RankingsByID(nil))
}

func TestRankingsByID(t *testing.T) {
	movies := moviesWithRatings(1, 2)
	AssignRankings(movies)

	assert.Equal(t, map[int64]int{1: 1, 2: 2}, RankingsByID(movies))
}

func TestAssignRankingsThreeMovies(t *testing.T) {
	movies := moviesWithRatings(3.2, 9.1, 7.5)
	SortByRating(movies)
	AssignRankings(movies)

	assert.Equal(t, map[int64]int{1: 1, 2: 3, 3: 2}, RankingsByID(movies))
	assert.Equal(t, 9.1, movies[len(movies)-1].Rating)
	assert.Equal(t, 3, movies[len(movies)-1].Ranking)
}
