// Package cache provides an in-memory response cache with expiry.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lillianfidler/churchill-falls-assistant/internal/core/domain"
	"github.com/lillianfidler/churchill-falls-assistant/internal/core/ports/driven"
)

// Defaults used when the configuration leaves them unset.
const (
	DefaultTTL     = time.Hour
	DefaultCleanup = 10 * time.Minute
)

// Verify interface compliance.
var _ driven.ResponseCache = (*ResponseCache)(nil)

// ResponseCache keeps shaped replies for a fixed time.
type ResponseCache struct {
	cache *gocache.Cache
}

// New creates a cache whose entries live for ttl and are purged every
// cleanup interval.
func New(ttl, cleanup time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanup
	}
	return &ResponseCache{cache: gocache.New(ttl, cleanup)}
}

// Get returns a copy of the cached reply.
func (c *ResponseCache) Get(key string) (*domain.ChatReply, bool) {
	x, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	reply, ok := x.(domain.ChatReply)
	if !ok {
		return nil, false
	}
	return &reply, true
}

// Set stores a copy of reply under the default expiration.
func (c *ResponseCache) Set(key string, reply *domain.ChatReply) {
	if reply == nil {
		return
	}
	c.cache.Set(key, *reply, gocache.DefaultExpiration)
}

// Flush removes every entry.
func (c *ResponseCache) Flush() {
	c.cache.Flush()
}

// ItemCount returns the number of entries, including expired ones not yet purged.
func (c *ResponseCache) ItemCount() int {
	return c.cache.ItemCount()
}
