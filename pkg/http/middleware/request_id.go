package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/yurykabanov/logrotator/pkg/appcontext"
)

const RequestIdHeader = "X-Request-Id"

// WithRequestId keeps the caller's request id or assigns a new one, and
// exposes it to the handler's logger.
func WithRequestId(next http.Handler, nextRequestId func() string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get(RequestIdHeader)

		if requestId == "" {
			requestId = nextRequestId()
		}

		ctx := appcontext.WithRequestId(r.Context(), requestId)

		w.Header().Set(RequestIdHeader, requestId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UuidRequestIdProvider() string {
	return uuid.New().String()
}
