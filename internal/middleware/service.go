package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"bazaar-be/internal/logger"
	"bazaar-be/internal/utils"

	"go.uber.org/zap"
)

// ServiceAuthHeader carries the shared secret of internal callers.
const ServiceAuthHeader = "X-Service-Auth"

func isInternalCaller(r *http.Request) bool {
	key := os.Getenv("INTERNAL_SECRET_KEY")
	if key == "" {
		return false
	}
	got := r.Header.Get(ServiceAuthHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1
}

// ServiceAuthMiddleware admits only internal callers presenting
// INTERNAL_SECRET_KEY. With no key configured every request is rejected.
func ServiceAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isInternalCaller(r) {
			logger.FromCtx(r.Context()).Warn("internal route rejected",
				zap.String("path", r.URL.Path),
			)
			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
