package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"dentalgate/pkg/logging/logging"
)

// Recoverer recovers from panics, logs the stack and answers a generic 500
// without leaking internal detail.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger := logging.L(r.Context())
					logger.Error("panic recovered",
						zap.Any("error", rec),
						zap.ByteString("stack", debug.Stack()),
					)

					writeError(w, r, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
