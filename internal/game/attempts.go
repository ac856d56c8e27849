package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amorozov/habitlife/internal/constants"
	"github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/logger"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

// StartAttempt creates a new active attempt with the given starting lives
// and initializes the game state for it. Returns ErrInvalidState if an
// attempt is already active.
func (e *Engine) StartAttempt(startingLives int) (*models.Attempt, error) {
	active, err := e.games.GetActiveAttempt()
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("attempt %s already active: %w", active.ID, errors.ErrInvalidState)
	}

	attempt := models.Attempt{
		ID:            uuid.NewString(),
		StartDate:     e.Now(),
		StartingLives: startingLives,
		IsActive:      true,
	}
	if err := e.games.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	if err := e.games.SaveGameState(models.GameState{
		CurrentLives: startingLives,
		UpdatedAt:    e.Now(),
	}); err != nil {
		return nil, err
	}

	logger.Info("Attempt started", "attempt", attempt.ID, "starting_lives", startingLives)
	return &attempt, nil
}

// ResetGame closes the current active attempt (if any) at its current life
// total and starts a fresh attempt with the default starting lives.
// Completions and life points stay attached to the old attempt.
func (e *Engine) ResetGame() (*models.Attempt, error) {
	active, err := e.games.GetActiveAttempt()
	if err != nil {
		return nil, err
	}

	if active != nil {
		lives := 0
		if state, err := e.games.GetGameState(); err != nil {
			return nil, err
		} else if state != nil {
			lives = state.CurrentLives
		}
		if err := e.closeAttempt(active, e.Now(), lives); err != nil {
			return nil, err
		}
	}

	return e.StartAttempt(constants.DefaultStartingLives)
}

// ForceReset repairs the game state back to the active attempt's starting
// lives without creating a new attempt or touching history. The
// last-settled marker is cleared so old weeks are not replayed against the
// repaired total.
func (e *Engine) ForceReset() error {
	active, err := e.games.GetActiveAttempt()
	if err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("active attempt: %w", errors.ErrNotFound)
	}

	if err := e.games.SaveGameState(models.GameState{
		CurrentLives: active.StartingLives,
		UpdatedAt:    e.Now(),
	}); err != nil {
		return err
	}

	logger.Info("Force reset", "attempt", active.ID, "lives", active.StartingLives)
	return nil
}

// DeleteAttempt removes a closed attempt. The active attempt is never
// deleted.
func (e *Engine) DeleteAttempt(id string) error {
	active, err := e.games.GetActiveAttempt()
	if err != nil {
		return err
	}
	if active != nil && active.ID == id {
		return fmt.Errorf("cannot delete the active attempt: %w", errors.ErrInvalidState)
	}
	return e.games.DeleteAttempt(id)
}

// CleanupSameDayAttempts deletes closed attempts that started and ended on
// the given day, returning how many were removed. Zero-duration attempts
// are typically left behind by repeated resets.
func (e *Engine) CleanupSameDayAttempts(day time.Time) (int, error) {
	target := utils.StartOfDay(day)

	attempts, err := e.games.GetAllAttempts()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, a := range attempts {
		if a.IsActive || a.EndDate == nil {
			continue
		}
		start := utils.StartOfDay(a.StartDate)
		end := utils.StartOfDay(*a.EndDate)
		if !start.Equal(end) || !start.Equal(target) {
			continue
		}
		if err := e.games.DeleteAttempt(a.ID); err != nil {
			return deleted, err
		}
		deleted++
	}

	if deleted > 0 {
		logger.Info("Same-day attempts cleaned up", "date", utils.FormatDate(target), "deleted", deleted)
	}
	return deleted, nil
}
