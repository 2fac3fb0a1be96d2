package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_LIMIT", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, 3, cfg.Burst)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_LIMIT", "100")
	t.Setenv("RATE_LIMIT_BURST", "20")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 100, cfg.Limit)
	assert.Equal(t, 20, cfg.Burst)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("client-a"))
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:         true,
		Limit:           1,
		Window:          time.Hour, // effectively no refill during the test
		Burst:           3,
		CleanupInterval: time.Hour,
	})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("client-a"), "request %d within burst", i)
	}
	assert.False(t, l.Allow("client-a"))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:         true,
		Limit:           1,
		Window:          time.Hour,
		Burst:           1,
		CleanupInterval: time.Hour,
	})
	defer l.Stop()

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))
	assert.True(t, l.Allow("client-b"))
}

func TestLimiter_Refills(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled:         true,
		Limit:           1000, // ~16 tokens per second
		Window:          time.Minute,
		Burst:           1,
		CleanupInterval: time.Hour,
	})
	defer l.Stop()

	assert.True(t, l.Allow("client-a"))
	assert.False(t, l.Allow("client-a"))

	time.Sleep(100 * time.Millisecond)
	assert.True(t, l.Allow("client-a"))
}
