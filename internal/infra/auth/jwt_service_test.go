package auth

import (
	"testing"
	"time"

	"cardlink/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	cfg := newTestJWTConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	// Generate tokens
	accessToken, refreshToken, err := jwtService.GenerateTokens(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token against the access secret
	parsed, err := jwtService.ValidateToken(accessToken, cfg.SecretKey.Access)
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "access", claims["type"])

	// Validate refresh token against the refresh secret
	parsed, err = jwtService.ValidateToken(refreshToken, cfg.SecretKey.Refresh)
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, ok = parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "refresh", claims["type"])
}

func TestJWTService_WrongSecret(t *testing.T) {
	cfg := newTestJWTConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	userID := uuid.New()
	accessToken, _, err := jwtService.GenerateTokens(userID)
	assert.NoError(t, err)

	// Access token must not validate against the refresh secret.
	_, err = jwtService.ValidateToken(accessToken, cfg.SecretKey.Refresh)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := newTestJWTConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	invalidToken := "clearly-not-a-jwt-token-format"
	_, err = jwtService.ValidateToken(invalidToken, cfg.SecretKey.Access)
	assert.Error(t, err)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	cfg := newTestJWTConfig()

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	duration := jwtService.GetRefreshTokenDuration()
	expectedDuration := time.Hour * 24 * 7 // 7 days
	assert.Equal(t, expectedDuration, duration)
}
