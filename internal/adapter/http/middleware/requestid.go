package middleware

import (
	"net/http"

	wrap "github.com/steadyapp/steady-backend/pkg/logger/wrapper"
	"github.com/steadyapp/steady-backend/pkg/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the client's header
// value when one is supplied. The id travels in the log context and is
// echoed back in the response.
func (a *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := wrap.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
