package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"dentalgate/pkg/logging/logging"
)

// BearerAuth guards mutating endpoints with a static shared secret. When
// disabled (the secret was left at its permissive default) every request
// passes.
func BearerAuth(secret string, disabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if disabled {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				writeError(w, r, http.StatusUnauthorized, "API key required")
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logging.L(r.Context()).Warn("invalid API key presented")
				writeError(w, r, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
