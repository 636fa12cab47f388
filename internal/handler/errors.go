package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tripjournal/tripjournal-go/internal/domain"
)

// errorDetail is the machine-readable part of an error response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// rather than surfaced; the status line has already been written.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode response", "error", err)
	}
}

// writeError writes an errorResponse with the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// requestError rejects a request before it reaches the service layer
// (missing or malformed body). Follows the same 422 convention as domain
// validation failures so clients see one shape for "fix your payload".
func requestError(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusUnprocessableEntity, "validation_error", message)
}

// serviceError maps a service-layer error onto an HTTP response.
// resource names what was being operated on ("trip", "event", "media") so
// not-found messages read naturally.
func serviceError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", resource+" not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, r, http.StatusBadRequest, "conflict", resource+" already exists")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "invalid username or password")
	default:
		slog.ErrorContext(r.Context(), "request failed", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation, e.g. "validation error: name is required" becomes
// "name is required".
func validationMessage(err error) string {
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
