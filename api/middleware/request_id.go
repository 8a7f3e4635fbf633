package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/wishlist-backend/pkg/logger"
)

const (
	requestIDHeader = "X-Request-Id"
	maxRequestIDLen = 128
)

// RequestID echoes a caller's X-Request-Id or mints one, and tags the log
// context with it. A create retried by the client carries the same
// Idempotency-Key, which is tagged too so retries line up in the logs.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if reqID == "" || len(reqID) > maxRequestIDLen {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
				if key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader)); key != "" {
					ctx = logg.WithField(ctx, "idempotency_key", key)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
