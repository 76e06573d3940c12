package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("2", "employee@bistro.com", "employee")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", claims["employee_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestJWTService_StreamToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, expiresIn, err := svc.GenerateStreamToken("3")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	id, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "3", id)
}

func TestJWTService_ValidateStreamToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	access, _, err := svc.GenerateAccessToken("3", "mike@bistro.com", "employee")
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(access)
	assert.Error(t, err)
}

func TestJWTService_RevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, exp, err := svc.GenerateAccessToken("1", "admin@bistro.com", "admin")
	require.NoError(t, err)
	assert.False(t, svc.IsTokenRevoked(token))

	svc.RevokeToken(token, exp)
	assert.True(t, svc.IsTokenRevoked(token))

	// expired entries are dropped on the next revoke
	svc.RevokeToken("stale", time.Now().Add(-time.Hour).Unix())
	svc.RevokeToken("fresh", exp)
	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked(token))
}
