// ABOUTME: HTTP handlers for workout folder CRUD
// ABOUTME: All routes operate on the authenticated principal's own folders

package api

import (
	"net/http"

	"github.com/settracker/settracker/internal/auth"
	"github.com/settracker/settracker/internal/service"
)

// FolderCreateRequest is the JSON request body for POST /workout-folders.
type FolderCreateRequest struct {
	Name      string   `json:"name"`
	Exercises []string `json:"exercises"`
}

// FolderUpdateRequest is the JSON request body for PUT /workout-folders/{id}.
// Absent fields are left untouched.
type FolderUpdateRequest struct {
	Name      *string   `json:"name"`
	Exercises *[]string `json:"exercises"`
}

// handleListFolders handles GET /workout-folders requests.
func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	folders, err := s.folders.ListForUser(r.Context(), principal.ID)
	if err != nil {
		s.writeResourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

// handleCreateFolder handles POST /workout-folders requests.
func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	var req FolderCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "name: field is required")
		return
	}

	folder, err := s.folders.Create(r.Context(), principal.ID, req.Name, req.Exercises)
	if err != nil {
		s.writeResourceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

// handleGetFolder handles GET /workout-folders/{id} requests.
func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	folder, err := s.folders.Get(r.Context(), r.PathValue("id"), principal.ID)
	if err != nil {
		s.writeResourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// handleUpdateFolder handles PUT /workout-folders/{id} requests.
func (s *Server) handleUpdateFolder(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	var req FolderUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == nil && req.Exercises == nil {
		writeDetail(w, http.StatusBadRequest, "Folder name or exercises must be provided to update folder")
		return
	}

	update := service.FolderUpdate{Name: req.Name, Exercises: req.Exercises}
	folder, err := s.folders.Update(r.Context(), r.PathValue("id"), principal.ID, update)
	if err != nil {
		s.writeResourceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// handleDeleteFolder handles DELETE /workout-folders/{id} requests.
func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	principal := auth.MustFromContext(r.Context())

	if err := s.folders.Delete(r.Context(), r.PathValue("id"), principal.ID); err != nil {
		s.writeResourceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
