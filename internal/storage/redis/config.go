package redis

import "time"

// Config holds Redis connection and expiry settings
type Config struct {
	// URL is the Redis connection URL (redis://host:port/db)
	URL string

	// PoolSize is the maximum number of socket connections
	PoolSize int

	// MinIdleConns is the minimum number of idle connections
	MinIdleConns int

	// IdentityTTL is how long an idle identity record is retained. A
	// returning client inside this window keeps its display name.
	IdentityTTL time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 2,
		IdentityTTL:  7 * 24 * time.Hour,
	}
}
