package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken(42, "alice", PurposeAccess, 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, PurposeAccess, claims.Purpose)
}

func TestParseToken_WrongPurpose(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken(42, "alice", PurposeVerifyEmail, 24*time.Hour)
	require.NoError(t, err)

	_, err = maker.ParseToken(token, PurposeAccess)
	require.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)
	other := NewJWTMaker("other-secret", time.Hour)

	token, err := maker.GenerateToken(1, "bob", PurposeAccess, 0)
	require.NoError(t, err)

	_, err = other.ParseToken(token, PurposeAccess)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken(1, "bob", PurposePasswordReset, -time.Minute)
	require.NoError(t, err)

	_, err = maker.ParseToken(token, PurposePasswordReset)
	require.Error(t, err)
}
