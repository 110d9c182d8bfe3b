// Package store provides persistent storage for settracker using MongoDB.
//
// # Architecture
//
// The package exposes narrow per-entity interfaces (UserStore, FolderStore,
// SetStore, ExerciseStore) plus a combined Store interface. MongoStore
// implements all of them in a single struct; services depend only on the
// interfaces they use, so tests substitute MockStore without touching a
// database.
//
// # Data Models
//
//   - User: application account; either federated (provider, no password
//     hash) or local (password hash, no provider), fixed at creation
//   - WorkoutFolder: named group of exercise ids owned by a user
//   - ExerciseSet: one logged set (weight, reps, tempo) owned by a user
//   - Exercise: system-provided or user-created movement
//
// # Error Handling
//
// Lookups report absence with ErrNotFound; duplicate user emails surface as
// ErrDuplicateEmail. Callers never see driver errors for either condition.
// Email uniqueness is backed by a unique index, so the insert-time conflict
// is authoritative even when two sign-ups race past the existence check.
//
// All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewMockStore() for unit tests:
//
//	s := store.NewMockStore()
//	// s implements the full Store interface in memory
package store
