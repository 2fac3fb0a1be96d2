package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/resumeai/internal/config"
)

func testJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing-minimum-32-bytes",
		Expiration: expiration,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testJWTService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_EmptyToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	_, err := svc.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := testJWTService(time.Hour)
	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{
		Secret:     "a-completely-different-secret-key-with-32-bytes",
		Expiration: time.Hour,
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := testJWTService(-time.Minute)
	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
