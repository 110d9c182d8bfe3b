// ABOUTME: Exercise catalog operations: system movements plus user-created ones
// ABOUTME: Custom exercises are owned by their creator; system ones are shared

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

// ExerciseService manages the exercise catalog.
type ExerciseService struct {
	exercises store.ExerciseStore
	logger    *slog.Logger
}

// NewExerciseService creates an ExerciseService.
func NewExerciseService(exercises store.ExerciseStore, logger *slog.Logger) *ExerciseService {
	return &ExerciseService{exercises: exercises, logger: logger}
}

// ListForUser returns system exercises plus the principal's custom ones.
func (s *ExerciseService) ListForUser(ctx context.Context, principalID string) ([]*store.Exercise, error) {
	return s.exercises.ListExercisesForUser(ctx, principalID)
}

// CreateCustom creates a user-owned exercise. The creator binding is
// captured here and never reassigned. A name already taken by a system
// exercise or one of the principal's own is rejected.
func (s *ExerciseService) CreateCustom(ctx context.Context, principalID, name string, bodyParts []string) (*store.Exercise, error) {
	visible, err := s.exercises.ListExercisesForUser(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	for _, existing := range visible {
		if existing.Name == name {
			return nil, fmt.Errorf("exercise %q: %w", name, ErrEntityExists)
		}
	}

	if bodyParts == nil {
		bodyParts = []string{}
	}

	exercise := &store.Exercise{
		ID:        uuid.NewString(),
		Name:      name,
		BodyParts: bodyParts,
		Creator:   principalID,
	}

	if err := s.exercises.CreateExercise(ctx, exercise); err != nil {
		return nil, fmt.Errorf("creating exercise: %w", err)
	}
	return exercise, nil
}

// Get returns a single exercise. System exercises are readable by everyone;
// custom exercises only by their creator.
func (s *ExerciseService) Get(ctx context.Context, exerciseID, principalID string) (*store.Exercise, error) {
	exercise, err := s.exercises.GetExercise(ctx, exerciseID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading exercise: %w", err)
	}

	if exercise.Creator != store.SystemCreator {
		if err := auth.CheckOwnership(exercise.Creator, principalID); err != nil {
			return nil, err
		}
	}
	return exercise, nil
}
