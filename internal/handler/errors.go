package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/sf-experiences/backend/internal/domain"
)

// errorDetail and errorResponse form the JSON error envelope
// {"error":{"code":...,"message":...}} every failing endpoint returns.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// notFoundBody returns an errorResponse for a missing resource.
func notFoundBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an errorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) errorResponse {
	return errorResponse{Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an errorResponse for a request rejected before
// reaching the service layer (e.g. malformed JSON or a bad query parameter).
func requestBody(message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: "bad_request", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped error.
// e.g. "service.ItineraryService.Update: validation error: name must not be blank"
// → "name must not be blank".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	// Drop "pkg.Type.Method: " location prefixes.
	for {
		head, rest, ok := strings.Cut(msg, ": ")
		if !ok || strings.ContainsAny(head, " \"") || !strings.Contains(head, ".") {
			return msg
		}
		msg = rest
	}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the status line is already sent
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a service error onto the error envelope.
// notFound replaces the bare "not found" message when the error names no subject.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		msg := unwrapMessage(err)
		if msg == domain.ErrNotFound.Error() {
			msg = notFound
		}
		writeJSON(w, http.StatusNotFound, notFoundBody(msg))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		writeInternalError(w, r, err)
	}
}

func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{
		Code: "internal_error", Message: "internal server error",
	}})
}

// decodeBody decodes the JSON request body into dst. On failure it writes
// the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: errorDetail{
			Code: "request_too_large", Message: "request body too large",
		}})
	case errors.Is(err, io.EOF):
		writeJSON(w, http.StatusBadRequest, requestBody("request body is required"))
	default:
		writeJSON(w, http.StatusBadRequest, requestBody("can't decode JSON body: "+err.Error()))
	}
	return false
}
