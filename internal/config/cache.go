package config

import (
	"strings"
	"time"
)

// CacheConfig controls the Redis response cache middleware. Methods
// lists the HTTP methods whose responses are cached; KeyStrategy
// selects which request parts contribute to the cache key. Responses
// larger than MaxBodyBytes are never cached.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* environment variables, with
// defaults tuned for the billboard and media list endpoints: short TTL
// so rankings stay fresh, GET only.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      defStr("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(defStr("CACHE_METHODS", "GET")),
		TTL:          defDur("CACHE_TTL", 60*time.Second),
		KeyStrategy:  defStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       defStr("CACHE_PREFIX", "mb:cache"),
		MaxBodyBytes: defInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
