package services

import (
	"context"
	"fmt"

	"github.com/renato0307/keebs/internal/domain"
	"github.com/renato0307/keebs/internal/logging"
	"github.com/renato0307/keebs/internal/ports"
)

// OverrideService persists user shortcut overrides and mirrors them into a tracker
type OverrideService struct {
	repo    ports.OverrideRepository
	tracker *Tracker
}

// NewOverrideService creates an OverrideService. tracker may be nil when
// overrides are only managed on disk (CLI commands).
func NewOverrideService(repo ports.OverrideRepository, tracker *Tracker) *OverrideService {
	return &OverrideService{
		repo:    repo,
		tracker: tracker,
	}
}

// List returns the persisted overrides
func (s *OverrideService) List(ctx context.Context) (domain.ShortcutMap, error) {
	overrides, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	return overrides, nil
}

// Load replaces the tracker's overrides with the persisted ones
func (s *OverrideService) Load(ctx context.Context) (domain.ShortcutMap, error) {
	overrides, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.tracker != nil {
		s.tracker.ResetAllOverrides()
		for _, id := range overrides.IDs() {
			s.tracker.UpdateShortcutOverride(id, overrides[id])
		}
	}

	logging.Logger.Info("Loaded shortcut overrides", "count", len(overrides))
	return overrides, nil
}

// Set validates and persists an override, then applies it to the tracker
func (s *OverrideService) Set(ctx context.Context, id, shortcut string) error {
	if id == "" {
		return domain.ErrMissingID
	}
	if res := domain.ValidateShortcut(shortcut); !res.Valid {
		return fmt.Errorf("invalid shortcut for '%s': %w", id, res.Err)
	}

	logging.Logger.Info("Setting shortcut override", "id", id, "shortcut", shortcut)
	if err := s.repo.Set(ctx, id, shortcut); err != nil {
		logging.Logger.Error("Failed to persist shortcut override", "id", id, "error", err)
		return fmt.Errorf("failed to save override: %w", err)
	}

	if s.tracker != nil {
		s.tracker.UpdateShortcutOverride(id, shortcut)
	}
	return nil
}

// Reset removes the override for id
func (s *OverrideService) Reset(ctx context.Context, id string) error {
	logging.Logger.Info("Resetting shortcut override", "id", id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to reset override '%s': %w", id, err)
	}

	if s.tracker != nil {
		s.tracker.ResetShortcutOverride(id)
	}
	return nil
}

// ResetAll removes every override
func (s *OverrideService) ResetAll(ctx context.Context) error {
	logging.Logger.Info("Resetting all shortcut overrides")
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to reset overrides: %w", err)
	}

	if s.tracker != nil {
		s.tracker.ResetAllOverrides()
	}
	return nil
}
