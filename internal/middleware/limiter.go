package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"bazaar-be/internal/logger"
	"bazaar-be/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Rate limit tiers.
const (
	// Order placement
	limitCheckout = rate.Limit(1)
	burstCheckout = 3

	// Cart edits, quotes and order lookups
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Trusted internal callers
	limitInternal = rate.Limit(100)
	burstInternal = 200

	visitorTTL = 3 * time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

// getVisitor retrieves or creates the limiter for a bucket key.
func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors drops buckets idle for longer than visitorTTL.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		evictIdle(time.Now())
	}
}

func evictIdle(now time.Time) {
	mu.Lock()
	defer mu.Unlock()
	for key, v := range visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(visitors, key)
		}
	}
}

// RateLimitMiddleware throttles per caller and tier. It must run after
// UserMiddleware so buckets are keyed by user where possible.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)
		key := callerIdentity(r) + ":" + tier

		if !getVisitor(key, limit, burst).Allow() {
			logger.FromCtx(r.Context()).Warn("rate limit exceeded",
				zap.String("bucket", key),
				zap.String("path", r.URL.Path),
			)
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// callerIdentity prefers the user id, then a client device id, then the
// remote IP.
func callerIdentity(r *http.Request) string {
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return "user:" + userID
	}
	if deviceID := strings.TrimSpace(r.Header.Get("X-Device-ID")); deviceID != "" {
		return "device:" + deviceID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if isInternalCaller(r) {
		return limitInternal, burstInternal, "internal"
	}

	if r.Method == http.MethodPost && r.URL.Path == "/checkout" {
		return limitCheckout, burstCheckout, "checkout"
	}

	return limitGeneral, burstGeneral, "general"
}
