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

// SettleWeek finalizes the week starting at weekStart: it sums the daily
// deltas over the seven days plus the weekly delta, persists the week's
// life point, applies the change to the cumulative life total, and closes
// the active attempt when the total reaches zero.
//
// The operation is not self-deduplicating: calling it twice for the same
// week applies the delta twice. ProcessAllMissedWeeks tracks
// lastWeekCalculationDate to guarantee each week settles once.
func (e *Engine) SettleWeek(weekStart time.Time) error {
	weekStart = utils.WeekStart(weekStart)
	weekEnd := utils.WeekEnd(weekStart)

	state, err := e.games.GetGameState()
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("game state: %w", errors.ErrNotFound)
	}

	attempt, err := e.games.GetActiveAttempt()
	if err != nil {
		return err
	}
	if attempt == nil {
		return fmt.Errorf("active attempt: %w", errors.ErrNotFound)
	}

	attemptStart := utils.StartOfDay(attempt.StartDate)
	if weekEnd.Before(attemptStart) {
		return fmt.Errorf("cannot settle week ending %s before attempt start %s: %w",
			utils.FormatDate(weekEnd), utils.FormatDate(attemptStart), errors.ErrInvalidState)
	}

	habits, err := e.habits.GetAllHabits(weekEnd, true)
	if err != nil {
		return err
	}

	xpChange := 0
	for i := 0; i < constants.DaysPerWeek; i++ {
		day := utils.AddDays(weekStart, i)
		if day.Before(attemptStart) {
			continue
		}
		delta, err := e.dailyDelta(day, habits, attempt.ID)
		if err != nil {
			return err
		}
		xpChange += delta
	}

	weeklyChange, err := e.weeklyDelta(weekStart, habits, attempt.ID)
	if err != nil {
		return err
	}
	xpChange += weeklyChange

	// Life point first, then game state: a failed life-point write must
	// not leave the cumulative total advanced.
	lifePoint := models.LifePoint{
		ID:            uuid.NewString(),
		Date:          weekEnd,
		Value:         xpChange,
		WeekStartDate: weekStart,
		AttemptID:     attempt.ID,
	}
	if err := e.games.SaveLifePoint(lifePoint); err != nil {
		return err
	}

	newLives := state.CurrentLives + xpChange
	if newLives < 0 {
		newLives = 0
	}
	gameOver := newLives <= 0

	if gameOver && !state.IsGameOver {
		if err := e.closeAttempt(attempt, weekEnd, newLives); err != nil {
			return err
		}
	}

	if err := e.games.SaveGameState(models.GameState{
		CurrentLives:            newLives,
		IsGameOver:              gameOver,
		LastWeekCalculationDate: &weekEnd,
		UpdatedAt:               e.Now(),
	}); err != nil {
		return err
	}

	logger.Info("Week settled", "week_start", utils.FormatDate(weekStart),
		"xp_change", xpChange, "lives", newLives, "game_over", gameOver)
	return nil
}

func (e *Engine) closeAttempt(attempt *models.Attempt, endDate time.Time, endingLives int) error {
	if !attempt.IsActive {
		return fmt.Errorf("attempt %s already closed: %w", attempt.ID, errors.ErrInvalidState)
	}
	closed := *attempt
	closed.EndDate = &endDate
	closed.EndingLives = &endingLives
	closed.IsActive = false
	if err := e.games.UpdateAttempt(closed); err != nil {
		return fmt.Errorf("failed to close attempt: %w", err)
	}
	logger.Info("Attempt closed", "attempt", attempt.ID,
		"ending_lives", endingLives, "end_date", utils.FormatDate(endDate))
	return nil
}
