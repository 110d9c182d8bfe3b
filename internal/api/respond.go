// ABOUTME: JSON response helpers and the shared service-error-to-status mapping
// ABOUTME: All error bodies use the {"detail": ...} shape

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/settracker/settracker/internal/auth"
	"github.com/settracker/settracker/internal/service"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error body. detail is a string for single errors or
// a []string for validation failures.
func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

// writeResourceError maps the errors shared by every resource endpoint:
// absence, ownership failure, and everything else as a generic 500 with no
// user-specific detail.
func (s *Server) writeResourceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEntityNotFound):
		writeDetail(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, auth.ErrNotOwner):
		writeDetail(w, http.StatusUnauthorized, "Unauthorized access")
	default:
		s.logger.Error("request failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON decodes the request body into v, reporting malformed JSON as a
// client error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
