// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without a MongoDB instance

package store

import (
	"context"
	"sort"
	"sync"
)

// MockStore is an in-memory Store implementation for testing. It enforces
// the same email uniqueness invariant as the real store so duplicate
// sign-up behavior can be tested without MongoDB.
type MockStore struct {
	mu         sync.RWMutex
	users      map[string]*User          // keyed by user ID
	emailIndex map[string]string         // keyed by normalized email -> user ID
	folders    map[string]*WorkoutFolder // keyed by folder ID
	sets       map[string]*ExerciseSet   // keyed by set ID
	exercises  map[string]*Exercise      // keyed by exercise ID
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		users:      make(map[string]*User),
		emailIndex: make(map[string]string),
		folders:    make(map[string]*WorkoutFolder),
		sets:       make(map[string]*ExerciseSet),
		exercises:  make(map[string]*Exercise),
	}
}

// CreateUser stores a new user, enforcing email uniqueness.
func (m *MockStore) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := NormalizeEmail(user.Email)
	if _, exists := m.emailIndex[email]; exists {
		return ErrDuplicateEmail
	}

	// Make a copy to avoid external modification
	u := *user
	m.users[u.ID] = &u
	m.emailIndex[email] = u.ID
	return nil
}

// GetUserByID retrieves a user by ID.
func (m *MockStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	result := *u
	return &result, nil
}

// GetUserByEmail retrieves a user by normalized email.
func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emailIndex[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}

	result := *m.users[id]
	return &result, nil
}

// UpdateUser replaces a stored user.
func (m *MockStore) UpdateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return ErrNotFound
	}

	// Keep the email index consistent if the email changed
	if NormalizeEmail(existing.Email) != NormalizeEmail(user.Email) {
		delete(m.emailIndex, NormalizeEmail(existing.Email))
		m.emailIndex[NormalizeEmail(user.Email)] = user.ID
	}

	u := *user
	m.users[u.ID] = &u
	return nil
}

// CreateFolder stores a new workout folder.
func (m *MockStore) CreateFolder(ctx context.Context, folder *WorkoutFolder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := *folder
	f.Exercises = append([]string(nil), folder.Exercises...)
	m.folders[f.ID] = &f
	return nil
}

// GetFolder retrieves a folder by ID.
func (m *MockStore) GetFolder(ctx context.Context, id string) (*WorkoutFolder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.folders[id]
	if !ok {
		return nil, ErrNotFound
	}

	result := *f
	result.Exercises = append([]string(nil), f.Exercises...)
	return &result, nil
}

// ListFoldersByUser returns all folders owned by a user, sorted by name.
func (m *MockStore) ListFoldersByUser(ctx context.Context, userID string) ([]*WorkoutFolder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	folders := []*WorkoutFolder{}
	for _, f := range m.folders {
		if f.UserID != userID {
			continue
		}
		result := *f
		result.Exercises = append([]string(nil), f.Exercises...)
		folders = append(folders, &result)
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, nil
}

// UpdateFolder replaces a stored folder.
func (m *MockStore) UpdateFolder(ctx context.Context, folder *WorkoutFolder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.folders[folder.ID]; !ok {
		return ErrNotFound
	}

	f := *folder
	f.Exercises = append([]string(nil), folder.Exercises...)
	m.folders[f.ID] = &f
	return nil
}

// DeleteFolder removes a folder by ID.
func (m *MockStore) DeleteFolder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.folders[id]; !ok {
		return ErrNotFound
	}

	delete(m.folders, id)
	return nil
}

// CreateSet stores a new exercise set.
func (m *MockStore) CreateSet(ctx context.Context, set *ExerciseSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := *set
	m.sets[s.ID] = &s
	return nil
}

// GetSet retrieves a set by ID.
func (m *MockStore) GetSet(ctx context.Context, id string) (*ExerciseSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sets[id]
	if !ok {
		return nil, ErrNotFound
	}

	result := *s
	return &result, nil
}

// ListSetsByExercise returns a user's sets for one exercise, oldest first.
func (m *MockStore) ListSetsByExercise(ctx context.Context, exerciseID, userID string) ([]*ExerciseSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sets := []*ExerciseSet{}
	for _, s := range m.sets {
		if s.ExerciseID != exerciseID || s.UserID != userID {
			continue
		}
		result := *s
		sets = append(sets, &result)
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].DateCreated < sets[j].DateCreated })
	return sets, nil
}

// DeleteSet removes a set by ID.
func (m *MockStore) DeleteSet(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sets[id]; !ok {
		return ErrNotFound
	}

	delete(m.sets, id)
	return nil
}

// CreateExercise stores a new exercise.
func (m *MockStore) CreateExercise(ctx context.Context, exercise *Exercise) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := *exercise
	e.BodyParts = append([]string(nil), exercise.BodyParts...)
	m.exercises[e.ID] = &e
	return nil
}

// GetExercise retrieves an exercise by ID.
func (m *MockStore) GetExercise(ctx context.Context, id string) (*Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.exercises[id]
	if !ok {
		return nil, ErrNotFound
	}

	result := *e
	result.BodyParts = append([]string(nil), e.BodyParts...)
	return &result, nil
}

// ListExercisesForUser returns system exercises plus the user's own, sorted by name.
func (m *MockStore) ListExercisesForUser(ctx context.Context, userID string) ([]*Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exercises := []*Exercise{}
	for _, e := range m.exercises {
		if e.Creator != SystemCreator && e.Creator != userID {
			continue
		}
		result := *e
		result.BodyParts = append([]string(nil), e.BodyParts...)
		exercises = append(exercises, &result)
	}

	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises, nil
}
