package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", "HS256", 15*time.Minute)

	token, err := manager.GenerateToken(42, "user@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.IsStaff)
}

func TestJWTExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", "HS256", -time.Minute)

	token, err := manager.GenerateToken(42, "user@example.com", false)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", "HS256", 15*time.Minute)
	other := NewJWTManager("other-secret", "HS256", 15*time.Minute)

	token, err := manager.GenerateToken(42, "user@example.com", false)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
