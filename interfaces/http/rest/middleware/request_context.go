package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"whiteboard/pkg/common"
)

// RequestIDHeader carries the request id back to the client
const RequestIDHeader = "X-Request-ID"

// RequestContext stores the request id and start time on the request context
// and echoes the id in the response headers. It must run after chi's
// RequestID middleware.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		if id == "" {
			id = common.ExtractRequestID(r)
		}

		ctx := common.WithStartTime(r.Context(), time.Now())
		if id != "" {
			ctx = common.WithRequestID(ctx, id)
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
