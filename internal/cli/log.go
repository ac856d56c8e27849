package cli

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

type LogCmd struct {
	Habit string `arg:"" help:"Habit name."`
	Date  string `short:"d" help:"Day to log (YYYY-MM-DD). Defaults to today."`
	Count int    `short:"c" help:"Number of completions to log." default:"1"`
}

func (c *LogCmd) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	return nil
}

func (c *LogCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Habit)
	if err != nil {
		return fmt.Errorf("failed to find habit %q: %w", c.Habit, err)
	}

	day, err := parseDateFlag(c.Date)
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}
	if !habit.IsActiveOn(day) {
		return fmt.Errorf("habit %q is not active on %s: %w", habit.Name, utils.FormatDate(day), apperrors.ErrInvalidState)
	}

	attempt, err := ctx.Store.GetActiveAttempt()
	if err != nil {
		return err
	}
	if attempt == nil {
		return fmt.Errorf("active attempt: %w", apperrors.ErrNotFound)
	}

	for i := 0; i < c.Count; i++ {
		completion := models.Completion{
			ID:            uuid.NewString(),
			HabitID:       habit.ID,
			Date:          day,
			WeekStartDate: utils.WeekStart(day),
			AttemptID:     attempt.ID,
		}
		if err := ctx.Store.AddCompletion(completion); err != nil {
			return fmt.Errorf("failed to log completion: %w", err)
		}
	}

	total, err := ctx.Store.GetCompletionCount(habit.ID, day, attempt.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Logged %s ×%d on %s (total %d)\n", habit.Name, c.Count, utils.FormatDate(day), total)
	return nil
}

type UnlogCmd struct {
	Habit string `arg:"" help:"Habit name."`
	Date  string `short:"d" help:"Day to unlog (YYYY-MM-DD). Defaults to today."`
}

func (c *UnlogCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Habit)
	if err != nil {
		return fmt.Errorf("failed to find habit %q: %w", c.Habit, err)
	}

	day, err := parseDateFlag(c.Date)
	if err != nil {
		return fmt.Errorf("invalid --date: %w", err)
	}

	attempt, err := ctx.Store.GetActiveAttempt()
	if err != nil {
		return err
	}
	if attempt == nil {
		return fmt.Errorf("active attempt: %w", apperrors.ErrNotFound)
	}

	if err := ctx.Store.DeleteLatestCompletion(habit.ID, day, attempt.ID); err != nil {
		return fmt.Errorf("failed to unlog completion: %w", err)
	}

	fmt.Printf("Removed one completion of %s on %s\n", habit.Name, utils.FormatDate(day))
	return nil
}
