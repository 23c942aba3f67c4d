package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fvidalmarques/userhub-api/internal/redact"
)

// Envelope is the standard response body: every response carries success,
// plus a message and/or data payload.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope carrying the given payload.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, Envelope{Success: true, Data: data})
}

// RespondWithMessage writes a success envelope carrying a message and an
// optional payload.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	RespondWithJSON(w, r, status, Envelope{Success: true, Message: message, Data: data})
}

// RespondWithError writes a failure envelope with the given status and
// message, and logs it with the request's trace ID for correlation.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{Success: false, Message: message})
}

// RespondWithErrorAndLog writes a failure envelope carrying only the safe
// message, while the detailed error goes to the logs in redacted form.
//
// Log level strategy:
//   - 5xx errors are logged at ERROR level
//   - 4xx errors are logged at DEBUG level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	// The raw error string never reaches the client; the redacted form goes
	// to the logs only.
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, Envelope{Success: false, Message: userMessage})
}
