package game

import (
	"github.com/google/uuid"

	"github.com/amorozov/habitlife/internal/constants"
	"github.com/amorozov/habitlife/internal/logger"
	"github.com/amorozov/habitlife/internal/models"
)

// RepairResult summarizes what Repair changed.
type RepairResult struct {
	AttemptCreated    bool
	LinkedCompletions int
	LinkedLifePoints  int
}

// Repair is the one-shot startup healing pass. It guarantees an active
// attempt exists and that no completion or life point is left without an
// attempt reference. Records that predate attempts are linked to an
// attempt spanning their history; a game-over state at repair time closes
// that historical attempt and opens a fresh one.
func (e *Engine) Repair() (RepairResult, error) {
	var result RepairResult

	active, err := e.games.GetActiveAttempt()
	if err != nil {
		return result, err
	}

	if active == nil {
		active, err = e.createRepairAttempt(&result)
		if err != nil {
			return result, err
		}
	}

	result.LinkedCompletions, err = e.repair.LinkOrphanCompletions(active.ID)
	if err != nil {
		return result, err
	}
	result.LinkedLifePoints, err = e.repair.LinkOrphanLifePoints(active.ID)
	if err != nil {
		return result, err
	}

	if result.AttemptCreated || result.LinkedCompletions > 0 || result.LinkedLifePoints > 0 {
		logger.Info("Repair completed",
			"attempt_created", result.AttemptCreated,
			"linked_completions", result.LinkedCompletions,
			"linked_life_points", result.LinkedLifePoints)
	}
	return result, nil
}

// createRepairAttempt builds the active attempt a repaired database needs.
// Pre-attempt history determines the start date; an existing game state
// seeds the life totals.
func (e *Engine) createRepairAttempt(result *RepairResult) (*models.Attempt, error) {
	earliest, err := e.repair.GetEarliestOrphanDate()
	if err != nil {
		return nil, err
	}

	state, err := e.games.GetGameState()
	if err != nil {
		return nil, err
	}
	lives := constants.DefaultStartingLives
	if state != nil {
		lives = state.CurrentLives
	}

	startDate := e.Now()
	if earliest != nil {
		startDate = *earliest
	}

	if state != nil && state.IsGameOver {
		// The recorded game ended: file the old history under a closed
		// attempt, then open a fresh one.
		now := e.Now()
		closed := models.Attempt{
			ID:            uuid.NewString(),
			StartDate:     startDate,
			EndDate:       &now,
			StartingLives: constants.DefaultStartingLives,
			EndingLives:   &lives,
		}
		if err := e.games.CreateAttempt(closed); err != nil {
			return nil, err
		}
		if _, err := e.repair.LinkOrphanCompletions(closed.ID); err != nil {
			return nil, err
		}
		if _, err := e.repair.LinkOrphanLifePoints(closed.ID); err != nil {
			return nil, err
		}

		result.AttemptCreated = true
		return e.StartAttempt(constants.DefaultStartingLives)
	}

	attempt := models.Attempt{
		ID:            uuid.NewString(),
		StartDate:     startDate,
		StartingLives: lives,
		IsActive:      true,
	}
	if err := e.games.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	if state == nil {
		if err := e.games.SaveGameState(models.GameState{
			CurrentLives: lives,
			UpdatedAt:    e.Now(),
		}); err != nil {
			return nil, err
		}
	}

	result.AttemptCreated = true
	return &attempt, nil
}
