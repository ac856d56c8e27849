package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/amorozov/habitlife/internal/utils"
)

type AttemptListCmd struct{}

func (c *AttemptListCmd) Run(ctx *Context) error {
	attempts, err := ctx.Store.GetAllAttempts()
	if err != nil {
		return fmt.Errorf("failed to list attempts: %w", err)
	}

	if len(attempts) == 0 {
		fmt.Println("No attempts yet. Run 'habitlife init' first.")
		return nil
	}

	fmt.Println(titleStyle.Render("Attempts"))
	for _, a := range attempts {
		line := fmt.Sprintf("  %s  %s", a.ID[:8], utils.FormatDate(utils.StartOfDay(a.StartDate)))
		if a.IsActive {
			line += positiveStyle.Render("  active")
			line += fmt.Sprintf("  (started with %d lives)", a.StartingLives)
		} else if a.EndDate != nil {
			line += fmt.Sprintf(" → %s", utils.FormatDate(utils.StartOfDay(*a.EndDate)))
			if a.EndingLives != nil {
				line += faintStyle.Render(fmt.Sprintf("  ended with %d lives", *a.EndingLives))
			}
		}
		fmt.Println(line)
	}
	return nil
}

type AttemptDeleteCmd struct {
	ID  string `arg:"" help:"Attempt ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *AttemptDeleteCmd) Run(ctx *Context) error {
	if !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete attempt %s?", c.ID)).
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := ctx.Engine.DeleteAttempt(c.ID); err != nil {
		return fmt.Errorf("failed to delete attempt: %w", err)
	}
	fmt.Printf("Deleted attempt %s\n", c.ID)
	return nil
}

type AttemptCleanupCmd struct {
	Date string `arg:"" help:"Day (YYYY-MM-DD) whose zero-duration attempts should be pruned."`
}

func (c *AttemptCleanupCmd) Run(ctx *Context) error {
	day, err := utils.ParseDate(c.Date)
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	deleted, err := ctx.Engine.CleanupSameDayAttempts(day)
	if err != nil {
		return fmt.Errorf("failed to clean up attempts: %w", err)
	}
	fmt.Printf("Deleted %d same-day attempt(s) on %s\n", deleted, c.Date)
	return nil
}
