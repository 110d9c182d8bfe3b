// ABOUTME: HTTP server wiring all settracker routes behind the auth middleware
// ABOUTME: Public auth endpoints plus protected CRUD endpoints with ownership checks

package api

import (
	"log/slog"
	"net/http"

	"github.com/settracker/settracker/internal/auth"
	"github.com/settracker/settracker/internal/service"
)

// Server holds the HTTP handlers and their collaborators. Everything is
// injected at construction; the server owns no globals.
type Server struct {
	users     *service.UserService
	folders   *service.FolderService
	sets      *service.SetService
	exercises *service.ExerciseService
	logger    *slog.Logger
	mux       *http.ServeMux
}

// New creates a Server and registers all routes. The codec backs the bearer
// token middleware guarding every protected endpoint.
func New(users *service.UserService, folders *service.FolderService, sets *service.SetService, exercises *service.ExerciseService, codec auth.TokenCodec, logger *slog.Logger) *Server {
	s := &Server{
		users:     users,
		folders:   folders,
		sets:      sets,
		exercises: exercises,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	protected := auth.Middleware(codec, logger)

	// Public endpoints
	s.mux.HandleFunc("POST /auth/signin/oauth", s.handleSignInOAuth)
	s.mux.HandleFunc("POST /auth/signin", s.handleSignIn)
	s.mux.HandleFunc("POST /auth/signup", s.handleSignUp)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Protected endpoints
	s.mux.Handle("PUT /me/preferences", protected(http.HandlerFunc(s.handleUpdatePreferences)))

	s.mux.Handle("GET /workout-folders", protected(http.HandlerFunc(s.handleListFolders)))
	s.mux.Handle("POST /workout-folders", protected(http.HandlerFunc(s.handleCreateFolder)))
	s.mux.Handle("GET /workout-folders/{id}", protected(http.HandlerFunc(s.handleGetFolder)))
	s.mux.Handle("PUT /workout-folders/{id}", protected(http.HandlerFunc(s.handleUpdateFolder)))
	s.mux.Handle("DELETE /workout-folders/{id}", protected(http.HandlerFunc(s.handleDeleteFolder)))

	s.mux.Handle("GET /sets/{exerciseID}", protected(http.HandlerFunc(s.handleListSets)))
	s.mux.Handle("POST /sets", protected(http.HandlerFunc(s.handleCreateSet)))
	s.mux.Handle("DELETE /sets/{id}", protected(http.HandlerFunc(s.handleDeleteSet)))

	s.mux.Handle("GET /exercises", protected(http.HandlerFunc(s.handleListExercises)))
	s.mux.Handle("POST /exercises", protected(http.HandlerFunc(s.handleCreateExercise)))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET /health requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
