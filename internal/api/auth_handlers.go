// ABOUTME: HTTP handlers for sign-in (oauth and local) and sign-up
// ABOUTME: Maps service auth errors to the statuses and messages clients rely on

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/settracker/settracker/internal/service"
	"github.com/settracker/settracker/internal/store"
)

// OAuthSignInRequest is the JSON request body for POST /auth/signin/oauth.
type OAuthSignInRequest struct {
	IdentityToken string `json:"identity_token"`
	Provider      string `json:"provider"`
}

// CredentialsRequest is the JSON request body for POST /auth/signin and
// POST /auth/signup.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the JSON response for every successful authentication.
type AuthResponse struct {
	ID          string            `json:"id"`
	Token       string            `json:"token"`
	Preferences store.Preferences `json:"preferences"`
}

// handleSignInOAuth handles POST /auth/signin/oauth requests.
// Every rejection of the provider token, whatever the cause, is a 400 with
// the same generic message.
func (s *Server) handleSignInOAuth(w http.ResponseWriter, r *http.Request) {
	var req OAuthSignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.IdentityToken == "" || req.Provider == "" {
		writeDetail(w, http.StatusBadRequest, "identity_token and provider are required")
		return
	}

	result, err := s.users.AuthenticateOAuth(r.Context(), req.IdentityToken, req.Provider)
	if errors.Is(err, service.ErrAuthenticationFailed) {
		writeDetail(w, http.StatusBadRequest, "Authentication failed")
		return
	}
	if err != nil {
		s.writeResourceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(result))
}

// handleSignIn handles POST /auth/signin requests.
// Unknown email and wrong password get the identical generic 401; an account
// that belongs to an identity provider gets the one sanctioned distinct
// message pointing the user back there.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateCredentials(req.Email, req.Password); details != nil {
		writeDetail(w, http.StatusUnprocessableEntity, details)
		return
	}

	result, err := s.users.AuthenticateLocal(r.Context(), req.Email, req.Password)

	var providerErr *service.ProviderAccountError
	if errors.As(err, &providerErr) {
		detail := fmt.Sprintf("Account was created with %s sign in. Please continue with that provider.", providerErr.Provider)
		writeDetail(w, http.StatusUnauthorized, detail)
		return
	}
	if errors.Is(err, service.ErrAuthenticationFailed) {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		s.writeResourceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(result))
}

// handleSignUp handles POST /auth/signup requests.
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateCredentials(req.Email, req.Password); details != nil {
		writeDetail(w, http.StatusUnprocessableEntity, details)
		return
	}

	result, err := s.users.SignUp(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrEntityExists) {
		writeDetail(w, http.StatusBadRequest, "User with this email already exists")
		return
	}
	if err != nil {
		s.writeResourceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(result))
}

func authResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		ID:          result.UserID,
		Token:       result.Token,
		Preferences: result.Preferences,
	}
}
