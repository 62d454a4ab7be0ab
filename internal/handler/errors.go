package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// errorResponse is the failure envelope of every endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps a service error onto the wire: validation failures and
// unknown indexes are client faults (HTTP 400, like the original backend),
// anything else is a 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: unwrapMessage(err)})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid index"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// writeBadRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "validation error: name is required" → "name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}
