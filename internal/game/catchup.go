package game

import (
	"github.com/amorozov/habitlife/internal/logger"
	"github.com/amorozov/habitlife/internal/utils"
)

// ProcessAllMissedWeeks settles every unprocessed week strictly before the
// current calendar week, one week at a time. It is safe to call on every
// launch: lastWeekCalculationDate advances only on successful settlement,
// so repeated invocations never re-apply a settled week and a failed week
// is retried on the next call.
func (e *Engine) ProcessAllMissedWeeks() error {
	state, err := e.games.GetGameState()
	if err != nil {
		return err
	}
	if state == nil {
		// Game never initialized; nothing to settle.
		return nil
	}

	attempt, err := e.games.GetActiveAttempt()
	if err != nil {
		return err
	}
	if attempt == nil {
		return nil
	}

	currentWeek := utils.WeekStart(e.Now())
	attemptStartWeek := utils.WeekStart(attempt.StartDate)

	next := attemptStartWeek
	if state.LastWeekCalculationDate != nil {
		lastWeek := utils.WeekStart(*state.LastWeekCalculationDate)
		if lastWeek.Equal(currentWeek) {
			return nil
		}
		next = utils.NextWeek(lastWeek)
	}
	// Never settle weeks before the attempt began.
	if next.Before(attemptStartWeek) {
		next = attemptStartWeek
	}

	settled := 0
	for next.Before(currentWeek) {
		if err := e.SettleWeek(next); err != nil {
			return err
		}
		settled++

		// A settlement can end the game; later weeks belong to no attempt.
		state, err = e.games.GetGameState()
		if err != nil {
			return err
		}
		if state != nil && state.IsGameOver {
			logger.Info("Catch-up stopped at game over", "weeks_settled", settled)
			return nil
		}

		next = utils.NextWeek(next)
	}

	if settled > 0 {
		logger.Info("Missed weeks processed", "weeks_settled", settled)
	}
	return nil
}
