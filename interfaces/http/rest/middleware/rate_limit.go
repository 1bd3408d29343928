package middleware

import (
	"net"
	"net/http"

	pkgerrors "whiteboard/pkg/errors"
	"whiteboard/pkg/ratelimit"
)

// RateLimit rejects clients that exceed limiter, keyed by remote IP. Run it
// after chi's RealIP middleware.
func RateLimit(limiter ratelimit.Limiter, errorHandler *pkgerrors.ErrorHandler, limit int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				errorHandler.Handle(w, r, err)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", "1")
				errorHandler.Handle(w, r, pkgerrors.NewRateLimitError(limit, "1s"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
