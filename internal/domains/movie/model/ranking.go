package model

import "sort"

// SortByRating orders movies ascending by rating. Equal ratings keep id order
// so the result is deterministic.
func SortByRating(movies []*Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		if movies[i].Rating != movies[j].Rating {
			return movies[i].Rating < movies[j].Rating
		}
		return movies[i].ID < movies[j].ID
	})
}

// AssignRankings numbers the ascending slice 1..N, so the highest rated
// movie gets N and the lowest gets 1. This is N - i counted from the best
// movie down.
func AssignRankings(movies []*Movie) {
	for i, m := range movies {
		m.Ranking = i + 1
	}
}

// RankingsByID collects id -> ranking for a batch save.
func RankingsByID(movies []*Movie) map[int64]int {
	out := make(map[int64]int, len(movies))
	for _, m := range movies {
		out[m.ID] = m.Ranking
	}
	return out
}
