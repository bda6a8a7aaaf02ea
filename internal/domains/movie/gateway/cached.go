package gateway

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"movielist-backend/internal/domains/movie/model"
	"movielist-backend/pkg/cache"
	"movielist-backend/pkg/logger"
)

// CachedSearcher is a cache-aside decorator around a MovieSearcher.
// Only successful lookups are stored; cache failures fall through to the
// wrapped searcher.
type CachedSearcher struct {
	next      MovieSearcher
	cache     cache.Cache
	searchTTL time.Duration
	detailTTL time.Duration
}

var _ MovieSearcher = (*CachedSearcher)(nil)

func NewCachedSearcher(next MovieSearcher, c cache.Cache, searchTTL, detailTTL time.Duration) *CachedSearcher {
	return &CachedSearcher{
		next:      next,
		cache:     c,
		searchTTL: searchTTL,
		detailTTL: detailTTL,
	}
}

func (s *CachedSearcher) SearchByTitle(ctx context.Context, title string) (*SearchResult, error) {
	key := searchCacheKey(title)

	var cached SearchResult
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		logger.Warn("search cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	} else if found {
		logger.Debug("search cache hit", map[string]interface{}{"key": key})
		return &cached, nil
	}

	res, err := s.next.SearchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, res, s.searchTTL); err != nil {
		logger.Warn("search cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return res, nil
}

func (s *CachedSearcher) FetchByExternalID(ctx context.Context, externalID string) (*model.Movie, error) {
	key := "tmdb:movie:" + strings.TrimSpace(externalID)

	var cached model.Movie
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		logger.Warn("detail cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	} else if found {
		return &cached, nil
	}

	m, err := s.next.FetchByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, m, s.detailTTL); err != nil {
		logger.Warn("detail cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return m, nil
}

func searchCacheKey(title string) string {
	data := fmt.Sprintf("q=%s|page=1", strings.ToLower(strings.TrimSpace(title)))
	hash := md5.Sum([]byte(data))
	return fmt.Sprintf("tmdb:search:%x", hash)
}
