package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "internlink.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.GenerateToken(42, "dupont@etu.test", "STUDENT", "Computer Science")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "dupont@etu.test", claims.Subject)
	assert.Equal(t, "STUDENT", claims.Role)
	assert.Equal(t, "Computer Science", claims.Department)
	assert.Equal(t, "internlink.test", claims.Issuer)
}

func TestValidateToken(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		service := newTestService(-time.Minute)
		token, err := service.GenerateToken(42, "dupont@etu.test", "STUDENT", "")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		service := newTestService(time.Hour)
		token, err := service.GenerateToken(42, "dupont@etu.test", "STUDENT", "")
		require.NoError(t, err)

		other := NewJWTService(JWTConfig{SecretKey: "other-secret", TokenExp: time.Hour})
		_, err = other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		service := newTestService(time.Hour)
		_, err := service.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestValidateAndExtractClaims(t *testing.T) {
	service := newTestService(time.Hour)

	t.Run("empty token", func(t *testing.T) {
		_, err := service.ValidateAndExtractClaims("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := service.GenerateToken(42, "dupont@etu.test", "STUDENT", "")
		require.NoError(t, err)

		claims, err := service.ValidateAndExtractClaims(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
	})
}

func TestExtractBearerToken(t *testing.T) {
	t.Run("empty header", func(t *testing.T) {
		_, err := ExtractBearerToken("")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("bearer prefix stripped", func(t *testing.T) {
		token, err := ExtractBearerToken("Bearer abc.def.ghi")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})

	t.Run("raw token accepted", func(t *testing.T) {
		token, err := ExtractBearerToken("abc.def.ghi")
		require.NoError(t, err)
		assert.Equal(t, "abc.def.ghi", token)
	})
}
