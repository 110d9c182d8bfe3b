// ABOUTME: Tests for exercise set endpoints
// ABOUTME: Covers creation stamping, day grouping in listings, and deletion rights

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/settracker/settracker/internal/service"
	"github.com/settracker/settracker/internal/store"
)

func TestSets_CreateStampsOwnerAndTimestamp(t *testing.T) {
	ts := newTestServer(t, &cannedVerifier{})
	user := ts.signUp(t, "lifter@example.com", "hunter22")
	ts.seedSystemExercise(t, "bench-press", "Bench Press")

	rec := ts.do(t, http.MethodPost, "/sets", user.Token, SetCreateRequest{
		ExerciseID: "bench-press",
		Weight:     82.5,
		Reps:       8,
		Notes:      "paused reps",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var set store.ExerciseSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	assert.NotEmpty(t, set.ID)
	assert.Equal(t, user.ID, set.UserID)
	assert.Equal(t, 82.5, set.Weight)
	assert.NotEmpty(t, set.DateCreated)
	assert.Equal(t, store.Tempo{}, set.Tempo, "missing tempo defaults to zeroes")
}

func TestSets_CreateRequiresExerciseID(t *testing.T) {
	ts := newTestServer(t, &cannedVerifier{})
	user := ts.signUp(t, "lifter@example.com", "hunter22")

	rec := ts.do(t, http.MethodPost, "/sets", user.Token, SetCreateRequest{Weight: 60, Reps: 5})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSets_ListGroupsByDay(t *testing.T) {
	ts := newTestServer(t, &cannedVerifier{})
	user := ts.signUp(t, "lifter@example.com", "hunter22")

	seed := []*store.ExerciseSet{
		{ID: "s1", UserID: user.ID, ExerciseID: "squat", Weight: 100, Reps: 5, DateCreated: "2026-08-28T09:00:00Z"},
		{ID: "s2", UserID: user.ID, ExerciseID: "squat", Weight: 105, Reps: 3, DateCreated: "2026-08-28T09:10:00Z"},
		{ID: "s3", UserID: user.ID, ExerciseID: "squat", Weight: 102.5, Reps: 5, DateCreated: "2026-08-30T10:00:00Z"},
		{ID: "s4", UserID: user.ID, ExerciseID: "deadlift", Weight: 140, Reps: 3, DateCreated: "2026-08-30T10:30:00Z"},
	}
	for _, set := range seed {
		require.NoError(t, ts.store.CreateSet(context.Background(), set))
	}

	rec := ts.do(t, http.MethodGet, "/sets/squat", user.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []service.SetGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "2026-08-30", groups[0].DateCreated, "most recent day first")
	require.Len(t, groups[0].Sets, 1)
	assert.Equal(t, "s3", groups[0].Sets[0].ID)
	assert.Equal(t, "2026-08-28", groups[1].DateCreated)
	require.Len(t, groups[1].Sets, 2)
	assert.Equal(t, "s1", groups[1].Sets[0].ID)
	assert.Equal(t, "s2", groups[1].Sets[1].ID)
}

func TestSets_CreateRejectsUnknownExercise(t *testing.T) {
	ts := newTestServer(t, &cannedVerifier{})
	user := ts.signUp(t, "lifter@example.com", "hunter22")

	rec := ts.do(t, http.MethodPost, "/sets", user.Token, SetCreateRequest{
		ExerciseID: "non_existent_id",
		Weight:     100,
		Reps:       5,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Exercise with ID non_existent_id does not exist", detail(t, rec))
}

func TestSets_ListIsScopedToPrincipal(t *testing.T) {
	ts := newTestServer(t, &cannedVerifier{})
	alice := ts.signUp(t, "alice@example.com", "hunter22")
	bob := ts.signUp(t, "bob@example.com", "hunter22")
	ts.seedSystemExercise(t, "squat", "Squat")

	rec := ts.do(t, http.MethodPost, "/sets", alice.Token, SetCreateRequest{ExerciseID: "squat", Weight: 100, Reps: 5})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/sets/squat", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []service.SetGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.Empty(t, groups)
}

func TestSets_DeleteEnforcesOwnership(t *testing.T) {
	ts := newTestServer(t, &cannedVerifier{})
	owner := ts.signUp(t, "owner@example.com", "hunter22")
	intruder := ts.signUp(t, "intruder@example.com", "hunter22")
	ts.seedSystemExercise(t, "squat", "Squat")

	rec := ts.do(t, http.MethodPost, "/sets", owner.Token, SetCreateRequest{ExerciseID: "squat", Weight: 100, Reps: 5})
	require.Equal(t, http.StatusCreated, rec.Code)
	var set store.ExerciseSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))

	rec = ts.do(t, http.MethodDelete, "/sets/"+set.ID, intruder.Token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized access", detail(t, rec))

	rec = ts.do(t, http.MethodDelete, "/sets/"+set.ID, owner.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/sets/"+set.ID, owner.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
