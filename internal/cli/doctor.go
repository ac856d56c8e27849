package cli

import (
	"fmt"

	"github.com/amorozov/habitlife/internal/utils"
)

// DoctorCmd runs consistency checks and the orphan-record repair pass.
type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println(titleStyle.Render("habitlife doctor"))

	state, err := ctx.Store.GetGameState()
	if err != nil {
		return err
	}
	if state == nil {
		fmt.Println(negativeStyle.Render("  ✗ game state missing"))
	} else {
		fmt.Printf("  ✓ game state: %d lives, game over: %v\n", state.CurrentLives, state.IsGameOver)
		if state.LastWeekCalculationDate != nil {
			fmt.Printf("  ✓ last settled week ended %s\n", utils.FormatDate(*state.LastWeekCalculationDate))
		}
	}

	attempt, err := ctx.Store.GetActiveAttempt()
	if err != nil {
		return err
	}
	if attempt == nil {
		fmt.Println(negativeStyle.Render("  ✗ no active attempt"))
	} else {
		fmt.Printf("  ✓ active attempt %s since %s\n", attempt.ID[:8],
			utils.FormatDate(utils.StartOfDay(attempt.StartDate)))
	}

	result, err := ctx.Engine.Repair()
	if err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}

	if result.AttemptCreated {
		fmt.Println("  → created a new active attempt")
	}
	if result.LinkedCompletions > 0 || result.LinkedLifePoints > 0 {
		fmt.Printf("  → linked %d orphan completion(s) and %d orphan life point(s)\n",
			result.LinkedCompletions, result.LinkedLifePoints)
	}
	if !result.AttemptCreated && result.LinkedCompletions == 0 && result.LinkedLifePoints == 0 {
		fmt.Println("  ✓ no repairs needed")
	}
	return nil
}
