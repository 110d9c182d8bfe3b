// ABOUTME: HTTP handler for updating the authenticated user's preferences
// ABOUTME: Applies a sparse merge so omitted fields keep their stored values

package api

import (
	"errors"
	"net/http"

	"github.com/settracker/settracker/internal/auth"
	"github.com/settracker/settracker/internal/service"
)

// PreferencesRequest is the JSON request body for PUT /me/preferences.
// Absent fields are left untouched.
type PreferencesRequest struct {
	Theme *string `json:"theme"`
}

// handleUpdatePreferences handles PUT /me/preferences requests.
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	var req PreferencesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Theme != nil {
		if details := validateTheme(*req.Theme); details != nil {
			writeDetail(w, http.StatusUnprocessableEntity, details)
			return
		}
	}

	update := service.PreferencesUpdate{Theme: req.Theme}
	if err := s.users.UpdatePreferences(r.Context(), principal.ID, update); err != nil {
		if errors.Is(err, service.ErrEntityNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		s.writeResourceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
