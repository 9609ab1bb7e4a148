package handlers

import (
	"net/http"
	"time"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/logger"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with an id (honoring an inbound
// X-Request-ID) and logs the request once handled.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.L.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"requestID", requestID,
			"duration", time.Since(start).String())
	})
}
