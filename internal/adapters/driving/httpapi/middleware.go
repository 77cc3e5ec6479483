package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/devdev758/indiainflation/internal/logger"
)

// requestIDHeader carries the per-request correlation ID.
const requestIDHeader = "X-Request-Id"

// withRequestID assigns each request a correlation ID (honoring one
// supplied by the client) and logs the request once served.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("api: %s %s id=%s took=%s", r.Method, r.URL.Path, id, time.Since(start))
	})
}
