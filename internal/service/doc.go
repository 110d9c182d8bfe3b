// Package service implements settracker's business operations over the
// store, auth, and identity-provider collaborators.
//
// Services receive every collaborator through their constructor; nothing is
// reached through a global, so tests substitute mocks without patching.
//
// The error taxonomy (ErrAuthenticationFailed, ErrEntityExists,
// ErrEntityNotFound, ProviderAccountError, plus auth.ErrNotOwner bubbling up
// from ownership checks) is recovered at the HTTP boundary and translated
// to stable status/message pairs there. Infrastructure failures propagate
// wrapped and become generic 500s.
package service
