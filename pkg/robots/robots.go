// Package robots caches the catalog origin's robots.txt and answers
// allow/deny queries for derived request paths.
package robots

import (
	"context"
	"sync"

	"github.com/temoto/robotstxt"

	"github.com/Juicebox-ApS/upsound-mcp-server/pkg/log"
)

// Fetcher fetches a URL and returns the body as text. Satisfied by
// (*upsound.Client).FetchText.
type Fetcher func(ctx context.Context, url string) (string, error)

// Cache lazily fetches an origin's robots.txt once per process. A failed
// fetch is cached as an empty ruleset, which allows everything: robots.txt
// being unreachable must never block tool calls.
type Cache struct {
	origin    string
	userAgent string
	disabled  bool
	fetch     Fetcher

	once sync.Once
	// group holds the rules for userAgent; nil means allow-all.
	group *robotstxt.Group
}

// NewCache returns a cache for origin's robots.txt, matching rules against
// userAgent. When disabled is true all queries are allowed and no fetch
// ever happens.
func NewCache(origin, userAgent string, disabled bool, fetch Fetcher) *Cache {
	return &Cache{
		origin:    origin,
		userAgent: userAgent,
		disabled:  disabled,
		fetch:     fetch,
	}
}

// EnsureLoaded fetches the robots document on first use. Concurrent callers
// share the single in-flight fetch; later callers observe the cached
// outcome without touching the network.
func (c *Cache) EnsureLoaded(ctx context.Context) {
	if c.disabled {
		return
	}

	c.once.Do(func() {
		url := c.origin + "/robots.txt"

		body, err := c.fetch(ctx, url)
		if err != nil {
			log.Errorf("fetching %s failed, allowing all paths: %v", url, err)
			return
		}

		data, err := robotstxt.FromString(body)
		if err != nil {
			log.Errorf("parsing %s failed, allowing all paths: %v", url, err)
			return
		}

		c.group = data.FindGroup(c.userAgent)
	})
}

// IsAllowed reports whether the cached rules permit fetching pathAndQuery.
// It performs no network I/O; call EnsureLoaded first.
func (c *Cache) IsAllowed(pathAndQuery string) bool {
	if c.disabled || c.group == nil {
		return true
	}
	return c.group.Test(pathAndQuery)
}
