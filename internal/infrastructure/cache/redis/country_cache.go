package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"aml-screening-engine/internal/domain/screening"
)

// unresolvedMarker is the cached value for locators the upstream resolver
// could not map to a country. Negative caching keeps repeated lookups of
// bad locators off the resolver.
const unresolvedMarker = "-"

// CountryCache is a read-through cache in front of a country resolver.
// Hits are served from Redis; misses fall through to the next resolver
// and the answer is cached, including failed resolutions.
type CountryCache struct {
	client        *Client
	next          screening.CountryResolver
	ttl           time.Duration
	unresolvedTTL time.Duration
}

// NewCountryCache creates a country cache delegating misses to next
func NewCountryCache(client *Client, next screening.CountryResolver, ttl time.Duration) *CountryCache {
	return &CountryCache{
		client:        client,
		next:          next,
		ttl:           ttl,
		unresolvedTTL: ttl / 4,
	}
}

// Resolve maps a locator to a country code, consulting the cache first.
// Cache infrastructure failures fall through to the upstream resolver:
// a Redis outage degrades latency, never correctness.
func (c *CountryCache) Resolve(ctx context.Context, locator string) (string, error) {
	key := countryKey(locator)

	cached, err := c.client.Get(ctx, key)
	switch {
	case err == nil:
		if cached == unresolvedMarker {
			return "", screening.ErrUnresolvedCountry
		}
		return cached, nil
	case !errors.Is(err, goredis.Nil):
		// Fall through to the resolver on cache errors
	}

	country, err := c.next.Resolve(ctx, locator)
	if err != nil {
		if errors.Is(err, screening.ErrUnresolvedCountry) {
			_ = c.client.Set(ctx, key, unresolvedMarker, c.unresolvedTTL)
		}
		return "", err
	}

	_ = c.client.Set(ctx, key, country, c.ttl)
	return country, nil
}

// Invalidate drops the cached resolution for a locator
func (c *CountryCache) Invalidate(ctx context.Context, locator string) error {
	return c.client.Del(ctx, countryKey(locator))
}

func countryKey(locator string) string {
	return fmt.Sprintf("country:locator:%s", locator)
}
