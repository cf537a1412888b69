package middleware

import (
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/infra/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware throttles unauthenticated scan recording per client IP.
type RateLimitMiddleware struct {
	limiter *ratelimit.Limiter
}

// NewRateLimitMiddleware creates a new rate limit middleware.
func NewRateLimitMiddleware(limiter *ratelimit.Limiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// LimitScans rejects requests beyond the per-IP window budget.
func (m *RateLimitMiddleware) LimitScans(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.limiter.Allow(c.RealIP()) {
			return domainerrors.ErrRateLimited
		}

		return next(c)
	}
}
