package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateActivationToken(t *testing.T) {
	a, err := GenerateActivationToken()
	require.NoError(t, err)
	assert.Len(t, a, 128)

	b, err := GenerateActivationToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("Password1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1!", hash)

	require.NoError(t, CheckPassword("Password1!", hash))
	assert.Error(t, CheckPassword("incorrecta", hash))
}
