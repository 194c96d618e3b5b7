package config

import (
	"os"
	"time"
)

// RateLimitConfig controls the Redis token bucket middleware. The
// bucket holds Capacity tokens and gains RefillTokens every
// RefillInterval; bucket keys expire after TTL of inactivity.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads the RATE_LIMIT_* environment variables and
// clamps the result to a usable bucket: at least one token of capacity,
// a positive refill, and a TTL long enough that idle buckets do not
// expire mid-refill.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        defStr("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity:       defInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   defInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: defDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            defDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    defStr("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         defStr("RATE_LIMIT_PREFIX", "mb:rl"),
		Debug:          defStr("RATE_LIMIT_DEBUG", "false") == "true",
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	if min := 5 * cfg.RefillInterval; cfg.TTL < min {
		cfg.TTL = min
	}
	return cfg
}

// defDur returns the environment value parsed as a duration, or a
// default when unset or unparseable.
func defDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
