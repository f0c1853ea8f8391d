package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyralabs/veyra/pkg/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := auth.GenerateToken(7, "admin@veyra.local", "admin")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin@veyra.local", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := auth.ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	token, err := auth.GenerateToken(1, "a@b.co", "admin")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.True(t, auth.CheckPassword(hash, "password"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
