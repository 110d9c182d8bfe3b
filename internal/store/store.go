// ABOUTME: Store interface and data types for settracker persistence
// ABOUTME: Defines User, WorkoutFolder, ExerciseSet, Exercise and the Store interface

package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested entity does not exist.
// Lookups report absence through this sentinel, never through a
// driver-specific error escaping to business logic.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when creating a user whose normalized email
// is already taken. The store enforces email uniqueness with a unique index,
// so a create-time conflict is the authoritative signal even if a prior
// existence check passed.
var ErrDuplicateEmail = errors.New("email already exists")

// ThemeDefault is the preference value users start with.
const ThemeDefault = "system"

// Preferences holds per-user settings. Present from creation onward.
type Preferences struct {
	Theme string `bson:"theme" json:"theme"`
}

// DefaultPreferences returns the settings assigned to every new user.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeDefault}
}

// User represents an application user. Exactly one of Provider and
// PasswordHash is set, fixed at creation: federated users carry a provider
// name and no local secret, local users carry a password hash and no provider.
type User struct {
	ID           string      `bson:"_id" json:"id"`
	Email        string      `bson:"email" json:"email"`
	Provider     string      `bson:"provider,omitempty" json:"provider,omitempty"`
	PasswordHash string      `bson:"password_hash,omitempty" json:"-"`
	Preferences  Preferences `bson:"preferences" json:"preferences"`
}

// IsFederated reports whether the user was created through an identity provider.
func (u *User) IsFederated() bool {
	return u.Provider != ""
}

// NormalizeEmail trims surrounding whitespace and lowercases an email so
// that lookups and the uniqueness invariant operate on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// WorkoutFolder groups exercise ids under a user-chosen name.
type WorkoutFolder struct {
	ID        string   `bson:"_id" json:"id"`
	UserID    string   `bson:"user_id" json:"user_id"`
	Name      string   `bson:"name" json:"name"`
	Exercises []string `bson:"exercises" json:"exercises"`
}

// Tempo describes the timing of a single repetition in seconds.
type Tempo struct {
	Eccentric  int `bson:"eccentric" json:"eccentric"`
	Concentric int `bson:"concentric" json:"concentric"`
	Pause      int `bson:"pause" json:"pause"`
}

// ExerciseSet is one logged set of an exercise.
type ExerciseSet struct {
	ID          string  `bson:"_id" json:"id"`
	UserID      string  `bson:"user_id" json:"user_id"`
	ExerciseID  string  `bson:"exercise_id" json:"exercise_id"`
	Weight      float64 `bson:"weight" json:"weight"`
	Reps        int     `bson:"reps" json:"reps"`
	Notes       string  `bson:"notes" json:"notes"`
	Tempo       Tempo   `bson:"tempo" json:"tempo"`
	DateCreated string  `bson:"date_created" json:"date_created"`
}

// SystemCreator marks exercises shipped with the application rather than
// created by a user.
const SystemCreator = "system"

// Exercise is a named movement, either system-provided or user-created.
type Exercise struct {
	ID        string   `bson:"_id" json:"id"`
	Name      string   `bson:"name" json:"name"`
	BodyParts []string `bson:"body_parts" json:"body_parts"`
	Creator   string   `bson:"creator" json:"creator"`
}

// UserStore persists users keyed by id and by normalized email.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}

// FolderStore persists workout folders.
type FolderStore interface {
	CreateFolder(ctx context.Context, folder *WorkoutFolder) error
	GetFolder(ctx context.Context, id string) (*WorkoutFolder, error)
	ListFoldersByUser(ctx context.Context, userID string) ([]*WorkoutFolder, error)
	UpdateFolder(ctx context.Context, folder *WorkoutFolder) error
	DeleteFolder(ctx context.Context, id string) error
}

// SetStore persists exercise sets.
type SetStore interface {
	CreateSet(ctx context.Context, set *ExerciseSet) error
	GetSet(ctx context.Context, id string) (*ExerciseSet, error)
	ListSetsByExercise(ctx context.Context, exerciseID, userID string) ([]*ExerciseSet, error)
	DeleteSet(ctx context.Context, id string) error
}

// ExerciseStore persists exercises.
type ExerciseStore interface {
	CreateExercise(ctx context.Context, exercise *Exercise) error
	GetExercise(ctx context.Context, id string) (*Exercise, error)
	ListExercisesForUser(ctx context.Context, userID string) ([]*Exercise, error)
}

// Store is the full persistence interface. MongoStore and MockStore both
// implement it; services depend on the narrower per-entity interfaces.
type Store interface {
	UserStore
	FolderStore
	SetStore
	ExerciseStore
}
