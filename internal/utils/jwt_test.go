package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatrack/media-billboard/internal/model"
)

const testSecret = "test-secret"

func testUser() *model.User {
	return &model.User{
		ID:                12,
		Username:          "reader",
		Email:             "reader@example.com",
		Age:               16,
		Role:              "user",
		AllowedCategories: []string{"kids", "teen"},
	}
}

func TestNewAccessToken(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testUser(), 30)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(12), claims["sub"])
	assert.Equal(t, float64(16), claims["age"])
	assert.Equal(t, "user", claims["role"])
	allowed, ok := claims["allowed"].([]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"kids", "teen"}, allowed)
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testUser(), 30)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}

func TestHashPasswordClampsCost(t *testing.T) {
	// An out-of-range cost falls back to the bcrypt default instead of
	// erroring out.
	hash, err := HashPassword("pw123456", 99)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "pw123456"))
}
