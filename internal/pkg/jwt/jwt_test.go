package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestGenerateToken(t *testing.T) {
	t.Run("generate valid token", func(t *testing.T) {
		token, err := GenerateToken(123, "admin", testSecret, 24)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := ParseToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, int64(123), claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("different users get different tokens", func(t *testing.T) {
		token1, err := GenerateToken(1, "editor", testSecret, 24)
		require.NoError(t, err)

		token2, err := GenerateToken(2, "editor", testSecret, 24)
		require.NoError(t, err)

		assert.NotEqual(t, token1, token2)
	})
}

func TestParseToken(t *testing.T) {
	t.Run("parse valid token", func(t *testing.T) {
		token, _ := GenerateToken(456, "editor", testSecret, 24)

		claims, err := ParseToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, int64(456), claims.UserID)
		assert.Equal(t, "editor", claims.Role)
		assert.True(t, claims.ExpiresAt.After(time.Now()))
	})

	t.Run("parse token with wrong secret", func(t *testing.T) {
		token, _ := GenerateToken(123, "admin", testSecret, 24)

		claims, err := ParseToken(token, "wrong-secret")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("parse malformed token", func(t *testing.T) {
		claims, err := ParseToken("not-a-jwt-at-all", testSecret)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("parse expired token", func(t *testing.T) {
		claims := Claims{
			UserID: 123,
			Role:   "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte(testSecret))

		result, err := ParseToken(tokenString, testSecret)
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("reject none signing method", func(t *testing.T) {
		claims := Claims{
			UserID: 123,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

		result, err := ParseToken(tokenString, testSecret)
		assert.Error(t, err)
		assert.Nil(t, result)
	})
}
