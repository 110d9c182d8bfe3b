// ABOUTME: Identity resolution service bridging federated and local authentication
// ABOUTME: Resolves a verified identity to a user record and issues bearer tokens

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/settracker/settracker/internal/auth"
	"github.com/settracker/settracker/internal/store"
)

// AuthResult is returned by every successful authentication: the resolved
// user, a freshly issued bearer token, and the user's preferences.
type AuthResult struct {
	UserID      string
	Token       string
	Preferences store.Preferences
}

// PreferencesUpdate is a sparse preferences change. Nil fields keep their
// stored value; the merge is field-level, never replace-whole-object, so
// clients can send only what changed.
type PreferencesUpdate struct {
	Theme *string
}

// UserService resolves verified identities (local or federated) into user
// records and issues the application's own bearer tokens. All collaborators
// are injected at construction.
type UserService struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	codec    auth.TokenCodec
	verifier auth.IdentityVerifier
	logger   *slog.Logger
}

// NewUserService creates a UserService with the given collaborators.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, codec auth.TokenCodec, verifier auth.IdentityVerifier, logger *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		hasher:   hasher,
		codec:    codec,
		verifier: verifier,
		logger:   logger,
	}
}

// AuthenticateOAuth validates a provider identity token, resolves it to a
// user (creating one on first sight), and issues a bearer token. An
// unsupported provider and an invalid token both come back as
// ErrAuthenticationFailed.
func (s *UserService) AuthenticateOAuth(ctx context.Context, identityToken, provider string) (*AuthResult, error) {
	email, err := s.verifier.VerifyIdentityToken(ctx, identityToken, provider)
	if err != nil {
		s.logger.Debug("identity token rejected", "provider", provider, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	email = store.NormalizeEmail(email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.createFederatedUser(ctx, email, provider)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving user: %w", err)
	}

	return s.issueFor(user)
}

// createFederatedUser creates a provider-origin user with no local secret.
// Losing a creation race to a concurrent sign-in is fine: the winner's
// record is authoritative and is simply re-fetched.
func (s *UserService) createFederatedUser(ctx context.Context, email, provider string) (*store.User, error) {
	user := &store.User{
		ID:          uuid.NewString(),
		Email:       email,
		Provider:    provider,
		Preferences: store.DefaultPreferences(),
	}

	err := s.users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return s.users.GetUserByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("created federated user", "user_id", user.ID, "provider", provider)
	return user, nil
}

// AuthenticateLocal verifies an email/password pair and issues a bearer
// token. Unknown email and wrong password produce the identical
// ErrAuthenticationFailed, and the unknown-email path burns a dummy hash
// comparison so the two are not distinguishable by timing either.
func (s *UserService) AuthenticateLocal(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, store.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		s.hasher.DummyVerify()
		return nil, ErrAuthenticationFailed
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if user.IsFederated() {
		s.hasher.DummyVerify()
		return nil, &ProviderAccountError{Provider: user.Provider}
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrAuthenticationFailed
	}

	return s.issueFor(user)
}

// SignUp creates a local-origin user and issues a bearer token. A taken
// email yields ErrEntityExists; the store's unique index makes the
// create-time conflict authoritative even when two sign-ups race past the
// existence check.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	email = store.NormalizeEmail(email)

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEntityExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &store.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Preferences:  store.DefaultPreferences(),
	}

	err = s.users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return nil, ErrEntityExists
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("created local user", "user_id", user.ID)
	return s.issueFor(user)
}

// UpdatePreferences merges a sparse update into the user's stored
// preferences. Fields absent from the update keep their current value.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, update PreferencesUpdate) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEntityNotFound
	}
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	if update.Theme != nil {
		user.Preferences.Theme = *update.Theme
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// GetUserByID loads a user, mapping store absence to ErrEntityNotFound.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*store.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

// issueFor issues a bearer token embedding the user's id and email.
func (s *UserService) issueFor(user *store.User) (*AuthResult, error) {
	token, err := s.codec.Issue(auth.Claims{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AuthResult{
		UserID:      user.ID,
		Token:       token,
		Preferences: user.Preferences,
	}, nil
}
