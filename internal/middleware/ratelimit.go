package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"dentalgate/internal/metrics"
	"dentalgate/internal/ratelimit"
	"dentalgate/pkg/logging/logging"
)

// RateLimit rejects requests over the per-client sliding-window quota with 429.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientID(r)

			if !limiter.Allow(client) {
				metrics.RateLimitedTotal.Inc()
				logging.L(r.Context()).Warn("rate limit exceeded", zap.String("client", client))
				writeError(w, r, http.StatusTooManyRequests,
					fmt.Sprintf("Too many requests. Limit: %d requests per %s.",
						limiter.Quota(), limiter.Window()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientID extracts a best-effort client identifier: the first hop of
// X-Forwarded-For when present, otherwise the remote address.
func ClientID(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
