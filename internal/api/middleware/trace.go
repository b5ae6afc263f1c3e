package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/elbship/internal/api/shared"
	"github.com/phrazzld/elbship/internal/platform/sns"
)

// TraceHeader echoes the trace ID back to the caller.
const TraceHeader = "X-Trace-Id"

// Trace returns middleware that assigns every request a trace ID. The SNS
// message ID is preferred, so redeliveries of one message share a trace;
// otherwise the chi request ID is used, or a fresh UUID.
func Trace(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(sns.MessageIDHeader)
			if traceID == "" {
				traceID = chimw.GetReqID(r.Context())
			}
			ctx := shared.WithTraceID(r.Context(), traceID)
			traceID = shared.GetTraceID(ctx)
			w.Header().Set(TraceHeader, traceID)

			logger.Debug("request started",
				"trace_id", traceID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
