// Package auth provides authentication and authorization for settracker.
//
// # Credentials
//
// Two credential-origin paths feed the same bearer token:
//
//   - Local: email/password, hashed with bcrypt (PasswordHasher). Verification
//     is constant time, and failure paths that never reach a stored digest
//     burn a dummy comparison to stay on the same timing profile.
//
//   - Federated: a Sign in with Apple identity token, verified against
//     Apple's published JWKS (IdentityVerifier). The key set is fetched on
//     every verification; there is no cache, so a provider outage blocks
//     federated sign-in until it recovers.
//
// # Bearer Tokens
//
// Tokens are stateless HS256 JWTs carrying exactly the principal id and
// email, valid for 24 hours (TokenCodec). There is no refresh and no
// revocation: a token stays valid until expiry even after a password
// change. Expiry forces full re-authentication.
//
// Verification distinguishes two failure kinds the HTTP layer maps to
// different statuses: ErrExpiredToken (valid signature, past expiry, 401)
// and ErrInvalidToken (anything else, 400).
//
// # Request Authentication
//
// Middleware authenticates every protected request and attaches a Principal
// to the request context:
//
//	mux.Handle("/workout-folders", authMW(http.HandlerFunc(h)))
//	...
//	principal := auth.MustFromContext(r.Context())
//
// # Ownership
//
// CheckOwnership is a pure equality check of resource owner id against
// principal id. Every mutating or single-resource-read operation on folders,
// sets, and custom exercises calls it before acting.
package auth
