// ABOUTME: HTTP middleware for bearer token authentication on API endpoints
// ABOUTME: Extracts the JWT from the Authorization header and adds the principal to context

package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// bearerPrefix is the exact required scheme prefix, case-sensitive with a
// single space. "bearer x" or "Bearer  x" are malformed, not missing.
const bearerPrefix = "Bearer "

// extractBearerToken extracts a bearer token from the Authorization header.
// A missing header and a present-but-malformed one are different error
// classes: the first means no credential, the second a client bug.
func extractBearerToken(authHeader string) (token string, status int, errMsg string) {
	if authHeader == "" {
		return "", http.StatusUnauthorized, "Could not validate credentials"
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", http.StatusBadRequest, "Invalid authorization scheme"
	}
	return strings.TrimPrefix(authHeader, bearerPrefix), 0, ""
}

// Middleware returns an HTTP middleware that authenticates every request
// with the given codec and attaches the Principal to the request context.
//
// Status mapping:
//   - no Authorization header: 401
//   - wrong scheme: 400
//   - expired token: 401
//   - malformed token or bad signature: 400
//   - structurally valid token missing id or email claims: 400
func Middleware(codec TokenCodec, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, status, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				writeAuthError(w, status, errMsg)
				return
			}

			claims, err := codec.Verify(token)
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					writeAuthError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				logger.Debug("token verification failed", "error", err)
				writeAuthError(w, http.StatusBadRequest, "Could not decode token")
				return
			}

			// A well-signed token without both identity claims is a client
			// error, not an authentication failure.
			if claims.ID == "" || claims.Email == "" {
				writeAuthError(w, http.StatusBadRequest, "Invalid token payload")
				return
			}

			principal := &Principal{ID: claims.ID, Email: claims.Email}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// writeAuthError writes a JSON error body in the API's {"detail": ...} shape.
func writeAuthError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
