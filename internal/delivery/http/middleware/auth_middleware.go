// Package middleware contains the echo middlewares of the HTTP delivery.
package middleware

import (
	"strings"

	"cardlink/config"
	"cardlink/internal/delivery/http/response"
	"cardlink/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// KeyUserID is the echo.Context key carrying the authenticated user id.
const KeyUserID = "userID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// Authenticate validates the JWT access token and stores the caller's user id
// on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
		if err != nil || !token.Valid {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "Failed to parse token claims")
		}

		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Token is not an access token")
		}

		userIDStr, ok := claims["sub"].(string)
		if !ok {
			return response.Unauthorized(c, "INVALID_TOKEN", "User ID missing from token")
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID format in token")
		}

		c.Set(KeyUserID, userID)

		return next(c)
	}
}
