package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DATABASE_URL", "postgres://localhost/resumeai")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost/resumeai", cfg.DatabaseURL)
	})

	t.Run("custom port", func(t *testing.T) {
		t.Setenv("PORT", "9000")
		t.Setenv("DATABASE_URL", "postgres://localhost/resumeai")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")
		t.Setenv("DATABASE_URL", "postgres://localhost/resumeai")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("PORT", "70000")
		t.Setenv("DATABASE_URL", "postgres://localhost/resumeai")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})
}

func TestNewPasswordConfig(t *testing.T) {
	t.Run("default cost", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "")

		cfg, err := NewPasswordConfig()
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.BcryptCost)
	})

	t.Run("custom cost", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "10")

		cfg, err := NewPasswordConfig()
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.BcryptCost)
	})

	t.Run("cost out of range", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "20")

		_, err := NewPasswordConfig()
		assert.Error(t, err)
	})

	t.Run("invalid cost", func(t *testing.T) {
		t.Setenv("BCRYPT_COST", "high")

		_, err := NewPasswordConfig()
		assert.Error(t, err)
	})
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 4} // min cost for fast tests

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
	assert.False(t, cfg.VerifyPassword("", hash))
}

func TestNewJWTConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
		t.Setenv("JWT_EXPIRATION_HOURS", "")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cfg.Expiration)
	})

	t.Run("custom expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
		t.Setenv("JWT_EXPIRATION_HOURS", "72")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, 72*time.Hour, cfg.Expiration)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := NewJWTConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("expiration below one hour", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")
		t.Setenv("JWT_EXPIRATION_HOURS", "0")

		_, err := NewJWTConfig()
		assert.Error(t, err)
	})
}
