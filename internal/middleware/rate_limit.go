package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/nisantasi/storefront/internal/auth"
)

// RateLimitConfig holds IP-based rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int
}

// DefaultAuthRateLimit returns the rate limit config for auth endpoints
// (register, login, verify-email). Resend has its own per-account
// cooldown on top of this.
func DefaultAuthRateLimit() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 5,
	}
}

// AuthenticatedRateLimitConfig holds per-user rate limits for the
// authenticated API surface.
type AuthenticatedRateLimitConfig struct {
	ReadOperationsPerMinute  int
	WriteOperationsPerMinute int
}

// DefaultAuthenticatedRateLimit returns per-user limits for authenticated endpoints
func DefaultAuthenticatedRateLimit() AuthenticatedRateLimitConfig {
	return AuthenticatedRateLimitConfig{
		ReadOperationsPerMinute:  100,
		WriteOperationsPerMinute: 30,
	}
}

// RateLimitByIP creates a middleware that rate limits requests by client IP
func RateLimitByIP(config RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		1*time.Minute,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(limitExceeded),
	)
}

// RateLimitByUserID creates a middleware that rate limits by the authenticated
// user's ID, falling back to the client IP when no claims are in context.
// operationType selects the read or write budget.
func RateLimitByUserID(config AuthenticatedRateLimitConfig, operationType string) func(next http.Handler) http.Handler {
	limit := config.ReadOperationsPerMinute
	if operationType == "write" {
		limit = config.WriteOperationsPerMinute
	}

	return httprate.Limit(
		limit,
		1*time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			if claims := auth.GetUserFromContext(r); claims != nil && claims.UserID != "" {
				return operationType + ":" + claims.UserID, nil
			}
			return httprate.KeyByRealIP(r)
		}),
		httprate.WithLimitHandler(limitExceeded),
	)
}

func limitExceeded(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"error":"rate_limit_exceeded","message":"Too many requests"}`))
}
