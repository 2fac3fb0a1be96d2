// Package ratelimit provides per-client rate limiting using a token bucket.
package ratelimit

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds rate limiter settings.
type Config struct {
	Enabled bool
	// Limit is the sustained number of requests per window.
	Limit int
	// Window is the time window over which Limit applies.
	Window time.Duration
	// Burst is the bucket capacity; defaults to Limit when zero.
	Burst int
	// CleanupInterval controls how often idle client buckets are dropped.
	CleanupInterval time.Duration
}

// LoadConfig loads rate limiter configuration from environment variables.
// Defaults allow 10 generation requests per minute with a burst of 3.
func LoadConfig() *Config {
	cfg := &Config{
		Enabled:         getEnvBool("RATE_LIMIT_ENABLED", true),
		Limit:           getEnvInt("RATE_LIMIT_LIMIT", 10),
		Window:          time.Minute,
		Burst:           getEnvInt("RATE_LIMIT_BURST", 3),
		CleanupInterval: 5 * time.Minute,
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.Limit
	}
	return cfg
}

// tokenBucket refills at a steady rate up to a burst capacity.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens = min(float64(tb.capacity), tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Limiter tracks one bucket per client identifier.
type Limiter struct {
	config  *Config
	buckets map[string]*bucketEntry
	mu      sync.Mutex
	done    chan struct{}
}

type bucketEntry struct {
	bucket   *tokenBucket
	lastSeen time.Time
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(config *Config) *Limiter {
	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucketEntry),
		done:    make(chan struct{}),
	}
	if config.Enabled {
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether the client may make another request.
func (l *Limiter) Allow(clientID string) bool {
	if !l.config.Enabled {
		return true
	}

	l.mu.Lock()
	entry, ok := l.buckets[clientID]
	if !ok {
		refillRate := float64(l.config.Limit) / l.config.Window.Seconds()
		entry = &bucketEntry{bucket: newTokenBucket(l.config.Burst, refillRate)}
		l.buckets[clientID] = entry
	}
	entry.lastSeen = time.Now()
	l.mu.Unlock()

	return entry.bucket.allow()
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	close(l.done)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-l.config.CleanupInterval)
			l.mu.Lock()
			for id, entry := range l.buckets {
				if entry.lastSeen.Before(cutoff) {
					delete(l.buckets, id)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
