// ABOUTME: Tests for the in-memory MockStore
// ABOUTME: Verifies it honors the same contracts as the MongoDB store

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStore_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()

	user := &User{
		ID:          "user-1",
		Email:       "someone@email.com",
		Provider:    "apple",
		Preferences: DefaultPreferences(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	byID, err := s.GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "someone@email.com", byID.Email)
	assert.Equal(t, ThemeDefault, byID.Preferences.Theme)

	byEmail, err := s.GetUserByEmail(ctx, "  SOMEONE@EMAIL.COM  ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", byEmail.ID)

	byID.Preferences.Theme = "dark"
	require.NoError(t, s.UpdateUser(ctx, byID))
	updated, err := s.GetUserByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Preferences.Theme)

	_, err = s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMockStore_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()

	require.NoError(t, s.CreateUser(ctx, &User{ID: "a", Email: "taken@email.com"}))

	err := s.CreateUser(ctx, &User{ID: "b", Email: "taken@email.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMockStore_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()

	_, err := s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetUserByEmail(ctx, "missing@email.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMockStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()

	require.NoError(t, s.CreateUser(ctx, &User{ID: "u", Email: "u@email.com", Preferences: DefaultPreferences()}))

	first, err := s.GetUserByID(ctx, "u")
	require.NoError(t, err)
	first.Preferences.Theme = "dark" // mutation must not leak into the store

	second, err := s.GetUserByID(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, ThemeDefault, second.Preferences.Theme)
}

func TestMockStore_FolderLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()

	folder := &WorkoutFolder{ID: "f-1", UserID: "u-1", Name: "Push Day", Exercises: []string{"e-1"}}
	require.NoError(t, s.CreateFolder(ctx, folder))

	got, err := s.GetFolder(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, "Push Day", got.Name)

	got.Name = "Pull Day"
	require.NoError(t, s.UpdateFolder(ctx, got))

	folders, err := s.ListFoldersByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Pull Day", folders[0].Name)

	others, err := s.ListFoldersByUser(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, others)

	require.NoError(t, s.DeleteFolder(ctx, "f-1"))
	_, err = s.GetFolder(ctx, "f-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMockStore_ListSetsByExercise_FiltersByUser(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()

	require.NoError(t, s.CreateSet(ctx, &ExerciseSet{ID: "s-1", UserID: "u-1", ExerciseID: "e-1", DateCreated: "2024-01-02T10:00:00Z"}))
	require.NoError(t, s.CreateSet(ctx, &ExerciseSet{ID: "s-2", UserID: "u-1", ExerciseID: "e-1", DateCreated: "2024-01-01T10:00:00Z"}))
	require.NoError(t, s.CreateSet(ctx, &ExerciseSet{ID: "s-3", UserID: "u-2", ExerciseID: "e-1", DateCreated: "2024-01-01T10:00:00Z"}))
	require.NoError(t, s.CreateSet(ctx, &ExerciseSet{ID: "s-4", UserID: "u-1", ExerciseID: "e-2", DateCreated: "2024-01-01T10:00:00Z"}))

	sets, err := s.ListSetsByExercise(ctx, "e-1", "u-1")
	require.NoError(t, err)
	require.Len(t, sets, 2)
	// Oldest first
	assert.Equal(t, "s-2", sets[0].ID)
	assert.Equal(t, "s-1", sets[1].ID)
}

func TestMockStore_ListExercisesForUser(t *testing.T) {
	ctx := context.Background()
	s := NewMockStore()

	require.NoError(t, s.CreateExercise(ctx, &Exercise{ID: "e-1", Name: "Bench Press", Creator: SystemCreator}))
	require.NoError(t, s.CreateExercise(ctx, &Exercise{ID: "e-2", Name: "Archer Pushup", Creator: "u-1"}))
	require.NoError(t, s.CreateExercise(ctx, &Exercise{ID: "e-3", Name: "Secret Move", Creator: "u-2"}))

	exercises, err := s.ListExercisesForUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	// Sorted by name, other users' custom exercises excluded
	assert.Equal(t, "Archer Pushup", exercises[0].Name)
	assert.Equal(t, "Bench Press", exercises[1].Name)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"someone@something.com", "someone@something.com"},
		{"   someone@something.com   ", "someone@something.com"},
		{"SOMEONE@SOMETHING.COM", "someone@something.com"},
		{"   SOMEONE@SOMETHING.COM   ", "someone@something.com"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
