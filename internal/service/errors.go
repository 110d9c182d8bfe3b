// ABOUTME: Service-level error taxonomy shared by the HTTP layer
// ABOUTME: Sentinel errors recovered at the API boundary and mapped to statuses

package service

import (
	"errors"
	"fmt"
)

// ErrAuthenticationFailed covers every business-grounds rejection of a
// well-formed credential: wrong password, unknown user, unsupported provider,
// invalid provider token. The causes are deliberately collapsed into one
// error kind; none of the distinctions are actionable for the end user, and
// keeping them apart would leak whether an email is registered.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrEntityExists is returned when creating an entity that already exists,
// such as signing up with a taken email.
var ErrEntityExists = errors.New("entity already exists")

// ErrEntityNotFound is returned when an operation targets a principal or
// resource that does not exist.
var ErrEntityNotFound = errors.New("entity not found")

// UnknownExerciseError is returned when a set references an exercise id that
// does not exist in the catalog.
type UnknownExerciseError struct {
	ExerciseID string
}

func (e *UnknownExerciseError) Error() string {
	return fmt.Sprintf("exercise with id %s does not exist", e.ExerciseID)
}

// ProviderAccountError is returned when a local sign-in targets an account
// created through an identity provider. This is the one sanctioned exception
// to the generic failure message: the email's existence is already implied
// by account-recovery flows, and naming the provider materially helps the
// user find their way back in.
type ProviderAccountError struct {
	Provider string
}

func (e *ProviderAccountError) Error() string {
	return fmt.Sprintf("account was created with %s sign in", e.Provider)
}
