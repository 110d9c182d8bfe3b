// ABOUTME: HTTP handlers for logging, listing, and deleting exercise sets
// ABOUTME: Listing returns sets for one exercise grouped by calendar day

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/settracker/settracker/internal/auth"
	"github.com/settracker/settracker/internal/service"
	"github.com/settracker/settracker/internal/store"
)

// SetCreateRequest is the JSON request body for POST /sets.
type SetCreateRequest struct {
	ExerciseID string       `json:"exercise_id"`
	Weight     float64      `json:"weight"`
	Reps       int          `json:"reps"`
	Notes      string       `json:"notes"`
	Tempo      *store.Tempo `json:"tempo"`
}

// handleListSets handles GET /sets/{exerciseID} requests.
func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	groups, err := s.sets.ListGrouped(r.Context(), r.PathValue("exerciseID"), principal.ID)
	if err != nil {
		s.writeResourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// handleCreateSet handles POST /sets requests.
func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	var req SetCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ExerciseID == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "exercise_id: field is required")
		return
	}

	in := service.SetInCreate{
		ExerciseID: req.ExerciseID,
		Weight:     req.Weight,
		Reps:       req.Reps,
		Notes:      req.Notes,
		Tempo:      req.Tempo,
	}
	set, err := s.sets.Create(r.Context(), principal.ID, in)
	if err != nil {
		var unknown *service.UnknownExerciseError
		if errors.As(err, &unknown) {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Exercise with ID %s does not exist", unknown.ExerciseID))
			return
		}
		s.writeResourceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

// handleDeleteSet handles DELETE /sets/{id} requests.
func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	if err := s.sets.Delete(r.Context(), r.PathValue("id"), principal.ID); err != nil {
		s.writeResourceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
