package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/cache"
	"job-tracker-api/pkg/logger"
)

// CachedProvider memoizes raw provider results per query. is_saved is never
// cached; it is computed after the provider returns.
type CachedProvider struct {
	next  domain.SearchProvider
	cache cache.Cache
	ttl   time.Duration
}

var _ domain.SearchProvider = (*CachedProvider)(nil)

func NewCachedProvider(next domain.SearchProvider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: c, ttl: ttl}
}

// cacheKey hashes the normalized query so equal queries share an entry.
func cacheKey(q domain.SearchQuery) string {
	raw, _ := json.Marshal(q)
	sum := sha256.Sum256(raw)
	return "search:" + hex.EncodeToString(sum[:])
}

// Search serves from cache when possible. Cache failures are logged and bypassed.
func (p *CachedProvider) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	key := cacheKey(q)

	raw, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		var results []domain.SearchResult
		if jsonErr := json.Unmarshal(raw, &results); jsonErr == nil {
			return results, nil
		}
		logger.Log.Warn("discarding corrupt search cache entry", "key", key)
	case !errors.Is(err, cache.ErrNotFound):
		logger.Log.Warn("search cache unavailable", "error", err)
	}

	results, err := p.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].IsSaved = false
	}
	if raw, err := json.Marshal(results); err == nil {
		if err := p.cache.Set(ctx, key, raw, p.ttl); err != nil {
			logger.Log.Warn("failed to cache search results", "error", err)
		}
	}
	return results, nil
}
