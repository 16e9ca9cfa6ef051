package robots

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func fixedFetcher(body string) Fetcher {
	return func(context.Context, string) (string, error) {
		return body, nil
	}
}

func TestFetchFailureAllowsEverything(t *testing.T) {
	cache := NewCache("https://www.upsound.com", "UpsoundMCP/test", false,
		func(context.Context, string) (string, error) {
			return "", errors.New("connection refused")
		})

	cache.EnsureLoaded(context.Background())

	assert.True(t, cache.IsAllowed("/studios"))
	assert.True(t, cache.IsAllowed("/studios/abc123"))
	assert.True(t, cache.IsAllowed("/anything/at/all"))
}

func TestFetchHappensAtMostOnce(t *testing.T) {
	var fetches atomic.Int64
	cache := NewCache("https://www.upsound.com", "UpsoundMCP/test", false,
		func(context.Context, string) (string, error) {
			fetches.Add(1)
			time.Sleep(10 * time.Millisecond)
			return "User-agent: *\nDisallow: /private\n", nil
		})

	var group errgroup.Group
	for range 20 {
		group.Go(func() error {
			cache.EnsureLoaded(context.Background())
			if cache.IsAllowed("/private/x") {
				return errors.New("expected /private/x to be disallowed")
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())

	assert.Equal(t, int64(1), fetches.Load())
}

func TestDisabledCacheNeverFetches(t *testing.T) {
	var fetches atomic.Int64
	cache := NewCache("https://www.upsound.com", "UpsoundMCP/test", true,
		func(context.Context, string) (string, error) {
			fetches.Add(1)
			return "User-agent: *\nDisallow: /\n", nil
		})

	cache.EnsureLoaded(context.Background())

	assert.True(t, cache.IsAllowed("/studios"))
	assert.Equal(t, int64(0), fetches.Load())
}

func TestAgentGroupTakesPrecedenceOverWildcard(t *testing.T) {
	cache := NewCache("https://www.upsound.com", "UpsoundMCP/1.0", false, fixedFetcher(
		"User-agent: *\nDisallow: /\n\nUser-agent: UpsoundMCP\nDisallow: /studios/private\n"))

	cache.EnsureLoaded(context.Background())

	assert.True(t, cache.IsAllowed("/studios?country=US"))
	assert.False(t, cache.IsAllowed("/studios/private/1"))
}

func TestLongestMatchingRuleWins(t *testing.T) {
	cache := NewCache("https://www.upsound.com", "UpsoundMCP/1.0", false, fixedFetcher(
		"User-agent: *\nDisallow: /studios\nAllow: /studios/featured\n"))

	cache.EnsureLoaded(context.Background())

	assert.False(t, cache.IsAllowed("/studios/abc123"))
	assert.True(t, cache.IsAllowed("/studios/featured/abc123"))
}

func TestEmptyDocumentAllowsEverything(t *testing.T) {
	cache := NewCache("https://www.upsound.com", "UpsoundMCP/1.0", false, fixedFetcher(""))

	cache.EnsureLoaded(context.Background())

	assert.True(t, cache.IsAllowed("/studios"))
}
