package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jansunwai/jansunwai-backend/internal/auth/jwt"
	"github.com/jansunwai/jansunwai-backend/pkg/config"
	"github.com/jansunwai/jansunwai-backend/pkg/errors"
)

func newManager(accessExpiry time.Duration) *jwt.Manager {
	return jwt.NewManager(&config.JWTConfig{
		Secret:        "test-secret-at-least-32-characters",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "jansunwai",
	})
}

func testUser() *jwt.UserInfo {
	return &jwt.UserInfo{
		ID:    "user-123",
		Email: "citizen@example.com",
		Name:  "Asha Kumari",
		Role:  "citizen",
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := newManager(15 * time.Minute)

	pair, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "citizen@example.com", claims.Email)
	assert.Equal(t, "citizen", claims.Role)

	refreshClaims, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", refreshClaims.UserID)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := newManager(-1 * time.Minute)

	pair, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "TOKEN_EXPIRED", appErr.Code)
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	m := newManager(15 * time.Minute)

	_, err := m.ValidateAccessToken("not-a-token")
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "TOKEN_INVALID", appErr.Code)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	m := newManager(15 * time.Minute)
	other := jwt.NewManager(&config.JWTConfig{
		Secret:        "another-secret-entirely-different!",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "jansunwai",
	})

	pair, err := other.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	require.Error(t, err)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	m := newManager(-1 * time.Minute)

	pair, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	// Access token already expired but the refresh token is still good.
	_, err = m.ValidateAccessToken(pair.AccessToken)
	require.Error(t, err)
	_, err = m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
}
