package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Close the current attempt and start over with full lives?").
			Description("Completions and weekly history stay attached to the old attempt.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	attempt, err := ctx.Engine.ResetGame()
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	fmt.Printf("New attempt started with %d lives (ID: %s)\n", attempt.StartingLives, attempt.ID)
	return nil
}

type ForceResetCmd struct{}

func (c *ForceResetCmd) Run(ctx *Context) error {
	if err := ctx.Engine.ForceReset(); err != nil {
		return fmt.Errorf("failed to force reset: %w", err)
	}
	fmt.Println("Game state restored to the active attempt's starting lives.")
	return nil
}
