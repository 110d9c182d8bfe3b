// ABOUTME: Exercise set logging, retrieval grouped by day, and deletion
// ABOUTME: Sets are stamped with the creating principal and a UTC timestamp

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/settracker/settracker/internal/auth"
	"github.com/settracker/settracker/internal/store"
)

// SetInCreate carries the client-supplied fields of a new set.
type SetInCreate struct {
	ExerciseID string
	Weight     float64
	Reps       int
	Notes      string
	Tempo      *store.Tempo
}

// SetGroup is one day's worth of sets for an exercise.
type SetGroup struct {
	DateCreated string               `json:"date_created"`
	Sets        []*store.ExerciseSet `json:"sets"`
}

// SetService manages logged exercise sets.
type SetService struct {
	sets      store.SetStore
	exercises store.ExerciseStore
	logger    *slog.Logger
	now       func() time.Time
}

// NewSetService creates a SetService.
func NewSetService(sets store.SetStore, exercises store.ExerciseStore, logger *slog.Logger) *SetService {
	return &SetService{sets: sets, exercises: exercises, logger: logger, now: time.Now}
}

// Create logs a new set for the principal. The referenced exercise must
// exist in the catalog. The creation timestamp is stamped server-side in
// UTC; a missing tempo defaults to all zeroes.
func (s *SetService) Create(ctx context.Context, principalID string, in SetInCreate) (*store.ExerciseSet, error) {
	if _, err := s.exercises.GetExercise(ctx, in.ExerciseID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &UnknownExerciseError{ExerciseID: in.ExerciseID}
		}
		return nil, fmt.Errorf("loading exercise: %w", err)
	}

	tempo := store.Tempo{}
	if in.Tempo != nil {
		tempo = *in.Tempo
	}

	set := &store.ExerciseSet{
		ID:          uuid.NewString(),
		UserID:      principalID,
		ExerciseID:  in.ExerciseID,
		Weight:      in.Weight,
		Reps:        in.Reps,
		Notes:       in.Notes,
		Tempo:       tempo,
		DateCreated: s.now().UTC().Format(time.RFC3339),
	}

	if err := s.sets.CreateSet(ctx, set); err != nil {
		return nil, fmt.Errorf("creating set: %w", err)
	}
	return set, nil
}

// ListGrouped returns the principal's sets for one exercise, grouped by
// calendar day, most recent day first.
func (s *SetService) ListGrouped(ctx context.Context, exerciseID, principalID string) ([]SetGroup, error) {
	sets, err := s.sets.ListSetsByExercise(ctx, exerciseID, principalID)
	if err != nil {
		return nil, fmt.Errorf("listing sets: %w", err)
	}
	return GroupSetsByDate(sets), nil
}

// Delete removes a set if the principal owns it.
func (s *SetService) Delete(ctx context.Context, setID, principalID string) error {
	set, err := s.sets.GetSet(ctx, setID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEntityNotFound
	}
	if err != nil {
		return fmt.Errorf("loading set: %w", err)
	}

	if err := auth.CheckOwnership(set.UserID, principalID); err != nil {
		return err
	}

	if err := s.sets.DeleteSet(ctx, setID); err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	return nil
}

// GroupSetsByDate buckets sets by the date part of their creation timestamp,
// most recent day first. Within a day, input order is preserved.
func GroupSetsByDate(sets []*store.ExerciseSet) []SetGroup {
	grouped := make(map[string][]*store.ExerciseSet)
	for _, set := range sets {
		day, _, _ := strings.Cut(set.DateCreated, "T")
		grouped[day] = append(grouped[day], set)
	}

	groups := make([]SetGroup, 0, len(grouped))
	for day, daySets := range grouped {
		groups = append(groups, SetGroup{DateCreated: day, Sets: daySets})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].DateCreated > groups[j].DateCreated })
	return groups
}
