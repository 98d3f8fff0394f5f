package middlewares

import (
	"net/http"
	"strconv"
	"time"

	httperrors "github.com/hiredvalley/hired-backend/internal/http/errors"
	"github.com/hiredvalley/hired-backend/internal/observability/logger"
	"github.com/hiredvalley/hired-backend/internal/rate"
)

// RateKeyFunc define cómo generar la clave de rate limiting.
type RateKeyFunc func(r *http.Request) string

// IPRouteKey: IP del cliente + path. Ver ClientIP para trustProxy.
func IPRouteKey(trustProxy bool) RateKeyFunc {
	return func(r *http.Request) string {
		return ClientIP(r, trustProxy) + "|" + r.URL.Path
	}
}

// WithRateLimit corta con 429 cuando el limiter rechaza. Si el limiter falla,
// el request pasa.
func WithRateLimit(limiter rate.Limiter, key RateKeyFunc) Middleware {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if key == nil {
		key = IPRouteKey(false)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), key(r))
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter unavailable", logger.Component("rate"), logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			if res.WindowTTL > 0 {
				resetAt := time.Now().Add(res.WindowTTL).Unix()
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))
			}
			if !res.Allowed {
				secs := int(res.RetryAfter.Round(time.Second).Seconds())
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				httperrors.WriteError(w, httperrors.ErrRateLimitExceeded)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			next.ServeHTTP(w, r)
		})
	}
}
