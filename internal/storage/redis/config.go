package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Finished games keep their rows for FinishedGameTTL
	// so late reconnects can still fetch a final snapshot; afterwards
	// the game counts as purged and reconnection fails.
	GuestUserTTL    time.Duration
	FinishedGameTTL time.Duration

	// CASRetries bounds the optimistic retry loop inside UpdateGame
	CASRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:             "redis://localhost:6379",
		PoolSize:        10,
		MinIdleConns:    2,
		GuestUserTTL:    24 * time.Hour,
		FinishedGameTTL: 24 * time.Hour,
		CASRetries:      1,
	}
}
