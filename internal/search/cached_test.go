package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/cache"
)

type countingProvider struct {
	calls   int
	results []domain.SearchResult
	err     error
}

func (p *countingProvider) Search(context.Context, domain.SearchQuery) ([]domain.SearchResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := make([]domain.SearchResult, len(p.results))
	copy(out, p.results)
	return out, nil
}

func TestCachedProvider(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{results: []domain.SearchResult{{JobTitle: "SWE", JobURL: "https://x/1", IsSaved: true}}}
	p := NewCachedProvider(next, cache.NewMemory(), time.Minute)
	q := domain.SearchQuery{SearchTerm: "go"}.WithDefaults()

	first, err := p.Search(ctx, q)
	require.NoError(t, err)
	assert.False(t, first[0].IsSaved)

	second, err := p.Search(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)

	_, err = p.Search(ctx, domain.SearchQuery{SearchTerm: "rust"}.WithDefaults())
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{err: errors.New("down")}
	p := NewCachedProvider(next, cache.NewMemory(), time.Minute)

	_, err := p.Search(ctx, domain.SearchQuery{})
	assert.Error(t, err)
	_, err = p.Search(ctx, domain.SearchQuery{})
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) { return nil, errors.New("redis down") }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("redis down")
}
func (brokenCache) Delete(context.Context, string) error { return nil }

func TestCachedProvider_CacheFailureBypassed(t *testing.T) {
	next := &countingProvider{results: []domain.SearchResult{{JobTitle: "SWE"}}}
	p := NewCachedProvider(next, brokenCache{}, time.Minute)

	results, err := p.Search(context.Background(), domain.SearchQuery{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
