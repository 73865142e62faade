package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"reservaplus/internal/caching"
	"reservaplus/internal/common"
)

// RateLimit bounds request rates on the public auth endpoints, keyed by
// client IP and path. Redis keeps the counters so limits hold across
// replicas. Redis being down fails open; authentication still guards the
// endpoints themselves.
func RateLimit(cache caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s", c.RealIP(), c.Path())
			limited, err := cache.IsRateLimited(c.Request().Context(), key, limit, window)
			if err != nil {
				log.Printf("WARN: rate limit check failed for %s: %v", key, err)
				return next(c)
			}
			if limited {
				return common.SendError(c, &common.AppError{
					Code:    "RATE_LIMITED",
					Message: "Too many requests",
					Status:  http.StatusTooManyRequests,
				})
			}
			return next(c)
		}
	}
}
