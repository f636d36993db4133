package middleware

import (
	"net/http"
	"strings"

	"bazaar-be/internal/logger"
	"bazaar-be/internal/utils"

	"go.uber.org/zap"
)

// UserIDHeader carries the caller identity set by the upstream gateway.
const UserIDHeader = "X-User-ID"

// UserMiddleware puts the caller's user id into the request context and
// rejects requests that carry none.
func UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			logger.FromCtx(r.Context()).Debug("request without user id",
				zap.String("path", r.URL.Path),
			)
			utils.WriteJSONError(w, "missing "+UserIDHeader+" header", http.StatusUnauthorized)
			return
		}

		ctx := utils.SetUserContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
