// ABOUTME: HTTP handlers for the exercise catalog
// ABOUTME: Listing merges shared system exercises with the principal's own

package api

import (
	"errors"
	"net/http"

	"github.com/settracker/settracker/internal/auth"
	"github.com/settracker/settracker/internal/service"
)

// ExerciseCreateRequest is the JSON request body for POST /exercises.
type ExerciseCreateRequest struct {
	Name      string   `json:"name"`
	BodyParts []string `json:"body_parts"`
}

// handleListExercises handles GET /exercises requests.
func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	exercises, err := s.exercises.ListForUser(r.Context(), principal.ID)
	if err != nil {
		s.writeResourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// handleCreateExercise handles POST /exercises requests.
func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	var req ExerciseCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateExerciseName(req.Name); details != nil {
		writeDetail(w, http.StatusUnprocessableEntity, details)
		return
	}

	exercise, err := s.exercises.CreateCustom(r.Context(), principal.ID, req.Name, req.BodyParts)
	if err != nil {
		if errors.Is(err, service.ErrEntityExists) {
			writeDetail(w, http.StatusBadRequest, req.Name+" already exists")
			return
		}
		s.writeResourceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}
