package cli

import (
	"fmt"
	"time"

	apperrors "github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/utils"
)

type StatusCmd struct {
	NoSync bool `help:"Skip settling missed weeks before showing status."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	if !c.NoSync {
		if err := ctx.Engine.ProcessAllMissedWeeks(); err != nil {
			return fmt.Errorf("failed to settle missed weeks: %w", err)
		}
	}

	state, err := ctx.Store.GetGameState()
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("game state: %w (run 'habitlife init')", apperrors.ErrNotFound)
	}

	attempt, err := ctx.Store.GetActiveAttempt()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Life points"))
	fmt.Printf("  Lives: %s\n", signedStyle(state.CurrentLives).Render(fmt.Sprintf("%d", state.CurrentLives)))
	if state.IsGameOver {
		fmt.Println(negativeStyle.Render("  GAME OVER — run 'habitlife reset' to start a new attempt"))
	}
	if state.LastWeekCalculationDate != nil {
		fmt.Printf("  Last settled week ended: %s\n", utils.FormatDate(*state.LastWeekCalculationDate))
	} else {
		fmt.Println(faintStyle.Render("  No weeks settled yet"))
	}

	if attempt != nil {
		fmt.Printf("  Attempt since %s (started with %d lives)\n",
			utils.FormatDate(utils.StartOfDay(attempt.StartDate)), attempt.StartingLives)

		today, err := ctx.Engine.DailyDelta(time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("  Today so far: %s XP\n", signedStyle(today).Render(fmt.Sprintf("%+d", today)))

		points, err := ctx.Store.GetLifePoints(attempt.ID)
		if err != nil {
			return err
		}
		if len(points) > 0 {
			fmt.Println(titleStyle.Render("Recent weeks"))
			start := 0
			if len(points) > 5 {
				start = len(points) - 5
			}
			for _, lp := range points[start:] {
				fmt.Printf("  week of %s: %s\n", utils.FormatDate(lp.WeekStartDate),
					signedStyle(lp.Value).Render(fmt.Sprintf("%+d", lp.Value)))
			}
		}
	}

	return nil
}

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *Context) error {
	if err := ctx.Engine.ProcessAllMissedWeeks(); err != nil {
		return fmt.Errorf("failed to settle missed weeks: %w", err)
	}
	fmt.Println("All missed weeks settled.")
	return nil
}
