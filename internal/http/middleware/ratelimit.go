package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Notifuse/canvas/internal/domain"
	"github.com/Notifuse/canvas/pkg/logger"
	"github.com/Notifuse/canvas/pkg/ratelimiter"
)

// RateLimit spends one token of namespace per request, keyed by the user
// that RequireAuth stored in the context. It must run after RequireAuth.
// Requests over budget get a JSON 429 with a Retry-After header.
func RateLimit(limiter *ratelimiter.RateLimiter, namespace string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || !limiter.HasPolicy(namespace) {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if user, ok := domain.UserFromContext(r.Context()); ok {
				key = user.ID
			}

			allowed, retryAfter := limiter.Allow(namespace, key)
			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				log.WithFields(map[string]interface{}{
					"namespace":   namespace,
					"key":         key,
					"retry_after": seconds,
				}).Warn("Rate limit exceeded")

				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				writeAuthError(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
