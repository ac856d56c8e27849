package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

type HabitAddCmd struct {
	Name            string `arg:"" help:"Habit name."`
	Kind            string `short:"k" help:"Habit kind (beneficial|detrimental)." default:"beneficial" enum:"beneficial,detrimental"`
	XP              int    `short:"x" help:"XP value awarded or deducted." default:"5"`
	TargetType      string `short:"t" help:"Target granularity for beneficial habits (daily|weekly)." enum:",daily,weekly" default:""`
	Target          int    `help:"Target completions per day or per week." default:"1"`
	DailyThreshold  int    `help:"Detrimental: allowed completions per day before penalties."`
	WeeklyThreshold int    `help:"Detrimental: allowed completions per week before penalties (overrides daily scoring)."`
	Proportional    bool   `short:"p" help:"Award partial credit for partial progress instead of all-or-nothing."`
	Task            bool   `help:"Track as a task: completions are recorded but never scored."`
	Sort            int    `help:"Sort order in listings."`
}

func (c *HabitAddCmd) Validate() error {
	if c.XP < 0 {
		return fmt.Errorf("xp value must not be negative")
	}
	if c.Kind == string(models.HabitBeneficial) && !c.Task && c.TargetType == "" {
		return fmt.Errorf("beneficial habits need a target type (daily|weekly)")
	}
	if c.Target < 0 || c.DailyThreshold < 0 || c.WeeklyThreshold < 0 {
		return fmt.Errorf("targets and thresholds must not be negative")
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit := models.Habit{
		ID:                 uuid.NewString(),
		Name:               c.Name,
		Kind:               models.HabitKind(c.Kind),
		IsTask:             c.Task,
		XPValue:            c.XP,
		TargetType:         models.TargetType(c.TargetType),
		TargetValue:        c.Target,
		DailyThreshold:     c.DailyThreshold,
		WeeklyThreshold:    c.WeeklyThreshold,
		ProportionalReward: c.Proportional,
		SortOrder:          c.Sort,
		CreatedAt:          utils.StartOfDay(time.Now()),
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}

	fmt.Printf("Added %s habit: %s (ID: %s)\n", c.Kind, c.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	All bool `short:"a" help:"Include soft-deleted habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	today := utils.StartOfDay(time.Now())
	habits, err := ctx.Store.GetAllHabits(today, c.All)
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitlife habit add'.")
		return nil
	}

	fmt.Println(titleStyle.Render("Habits"))
	for _, h := range habits {
		label := describeHabit(h)
		if h.DeletedFromDate != nil {
			label += faintStyle.Render(fmt.Sprintf(" (deleted from %s)", utils.FormatDate(*h.DeletedFromDate)))
		}
		fmt.Printf("  %s  %s\n", h.ID[:8], label)
	}
	return nil
}

func describeHabit(h models.Habit) string {
	if h.IsTask {
		return fmt.Sprintf("%s [task]", h.Name)
	}
	if h.Kind == models.HabitDetrimental {
		if h.WeeklyThreshold > 0 {
			return fmt.Sprintf("%s [detrimental, -%d XP past %d/week]", h.Name, h.XPValue, h.WeeklyThreshold)
		}
		return fmt.Sprintf("%s [detrimental, -%d XP past %d/day]", h.Name, h.XPValue, h.DailyThreshold)
	}

	mode := "all-or-nothing"
	if h.ProportionalReward {
		mode = "proportional"
	}
	return fmt.Sprintf("%s [+%d XP, %d/%s, %s]", h.Name, h.XPValue, h.TargetValue, h.TargetType, mode)
}

type HabitEditCmd struct {
	Name            string  `arg:"" help:"Habit name."`
	Rename          *string `help:"New habit name."`
	XP              *int    `short:"x" help:"New XP value."`
	Target          *int    `help:"New target completions per day or per week."`
	DailyThreshold  *int    `help:"New daily threshold (detrimental habits)."`
	WeeklyThreshold *int    `help:"New weekly threshold (detrimental habits)."`
	Proportional    *bool   `short:"p" help:"Toggle proportional partial credit."`
	Sort            *int    `help:"New sort order."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("failed to find habit %q: %w", c.Name, err)
	}

	if c.Rename != nil {
		habit.Name = *c.Rename
	}
	if c.XP != nil {
		if *c.XP < 0 {
			return fmt.Errorf("xp value must not be negative")
		}
		habit.XPValue = *c.XP
	}
	if c.Target != nil {
		habit.TargetValue = *c.Target
	}
	if c.DailyThreshold != nil {
		habit.DailyThreshold = *c.DailyThreshold
	}
	if c.WeeklyThreshold != nil {
		habit.WeeklyThreshold = *c.WeeklyThreshold
	}
	if c.Proportional != nil {
		habit.ProportionalReward = *c.Proportional
	}
	if c.Sort != nil {
		habit.SortOrder = *c.Sort
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	fmt.Printf("Updated habit %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	From string `help:"Deletion boundary date (YYYY-MM-DD); history before it still scores. Defaults to today."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("failed to find habit %q: %w", c.Name, err)
	}

	from, err := parseDateFlag(c.From)
	if err != nil {
		return fmt.Errorf("invalid --from date: %w", err)
	}

	if err := ctx.Store.SoftDeleteHabit(habit.ID, from); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	fmt.Printf("Deleted habit %s from %s (earlier history still counts)\n", habit.Name, utils.FormatDate(from))
	return nil
}

type HabitRestoreCmd struct {
	ID string `arg:"" help:"Habit ID to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.RestoreHabit(c.ID); err != nil {
		return fmt.Errorf("failed to restore habit: %w", err)
	}
	fmt.Printf("Restored habit %s\n", c.ID)
	return nil
}
