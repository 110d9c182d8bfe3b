// ABOUTME: Workout folder operations with per-resource ownership enforcement
// ABOUTME: Every single-folder read or mutation checks the requesting principal

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

// FolderUpdate is a sparse folder change; nil fields keep their stored value.
type FolderUpdate struct {
	Name      *string
	Exercises *[]string
}

// FolderService manages workout folders on behalf of an authenticated principal.
type FolderService struct {
	folders store.FolderStore
	logger  *slog.Logger
}

// NewFolderService creates a FolderService.
func NewFolderService(folders store.FolderStore, logger *slog.Logger) *FolderService {
	return &FolderService{folders: folders, logger: logger}
}

// ListForUser returns all folders owned by the principal. No ownership check
// is needed: the query itself is scoped to the principal.
func (s *FolderService) ListForUser(ctx context.Context, principalID string) ([]*store.WorkoutFolder, error) {
	return s.folders.ListFoldersByUser(ctx, principalID)
}

// Get returns a single folder if the principal owns it.
func (s *FolderService) Get(ctx context.Context, folderID, principalID string) (*store.WorkoutFolder, error) {
	folder, err := s.folders.GetFolder(ctx, folderID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEntityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading folder: %w", err)
	}

	if err := auth.CheckOwnership(folder.UserID, principalID); err != nil {
		return nil, err
	}
	return folder, nil
}

// Create makes a new folder owned by the principal.
func (s *FolderService) Create(ctx context.Context, principalID, name string, exercises []string) (*store.WorkoutFolder, error) {
	if exercises == nil {
		exercises = []string{}
	}

	folder := &store.WorkoutFolder{
		ID:        uuid.NewString(),
		UserID:    principalID,
		Name:      name,
		Exercises: exercises,
	}

	if err := s.folders.CreateFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}
	return folder, nil
}

// Update merges a sparse update into the folder if the principal owns it.
// Ownership is captured at creation and never reassigned; the update cannot
// touch UserID.
func (s *FolderService) Update(ctx context.Context, folderID, principalID string, update FolderUpdate) (*store.WorkoutFolder, error) {
	folder, err := s.Get(ctx, folderID, principalID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		folder.Name = *update.Name
	}
	if update.Exercises != nil {
		folder.Exercises = *update.Exercises
	}

	if err := s.folders.UpdateFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("updating folder: %w", err)
	}
	return folder, nil
}

// Delete removes the folder if the principal owns it.
func (s *FolderService) Delete(ctx context.Context, folderID, principalID string) error {
	if _, err := s.Get(ctx, folderID, principalID); err != nil {
		return err
	}

	if err := s.folders.DeleteFolder(ctx, folderID); err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}
	return nil
}
