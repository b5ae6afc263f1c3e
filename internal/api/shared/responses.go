package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrazzld/elbship/internal/redact"
)

// ErrorResponse is the body of every non-2xx webhook response. SNS ignores
// it; it exists for operators replaying deliveries by hand.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondEmpty writes status with no body. SNS only looks at the status.
func RespondEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// RespondWithJSON writes data as a JSON body with the given status.
func RespondWithJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithErrorAndLog answers a delivery with userMessage and logs the
// redacted err. Server-side failures, which make SNS redeliver, are logged
// at ERROR; rejected deliveries at WARN.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	logger *slog.Logger,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	attrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", status),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", redact.Error(err)))
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.LogAttrs(r.Context(), level, "delivery rejected", attrs...)

	RespondWithJSON(w, logger, status, ErrorResponse{
		Error:   userMessage,
		TraceID: traceID,
	})
}
