package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"valuation-platform/pkg/logging"
)

// RequestIDMiddleware tags every request with an identifier the
// structured logger picks up from the context. An inbound X-Request-ID
// header is passed through unchanged.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), logging.RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
