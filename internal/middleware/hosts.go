package middleware

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"dentalgate/pkg/logging/logging"
)

// AllowedHosts rejects requests whose Host header is not in the allow list.
// A single "*" entry allows everything.
func AllowedHosts(hosts []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		if h == "*" {
			allowAll = true
		}
		allowed[strings.ToLower(h)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowAll {
				next.ServeHTTP(w, r)
				return
			}

			host := r.Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}

			if !allowed[strings.ToLower(host)] {
				logging.L(r.Context()).Warn("host not allowed", zap.String("host", r.Host))
				writeError(w, r, http.StatusBadRequest, "invalid host header")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
