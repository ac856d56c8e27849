package cli

import (
	"fmt"
	"time"

	apperrors "github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

type ReportCmd struct {
	Week string `short:"w" help:"Any date inside the week to report on (YYYY-MM-DD). Defaults to the last settled week."`
}

func (c *ReportCmd) Run(ctx *Context) error {
	var weekStart time.Time
	if c.Week != "" {
		day, err := utils.ParseDate(c.Week)
		if err != nil {
			return fmt.Errorf("invalid --week date: %w", err)
		}
		weekStart = utils.WeekStart(day)
	} else {
		state, err := ctx.Store.GetGameState()
		if err != nil {
			return err
		}
		if state == nil || state.LastWeekCalculationDate == nil {
			return fmt.Errorf("no settled weeks yet: %w", apperrors.ErrNotFound)
		}
		weekStart = utils.WeekStart(*state.LastWeekCalculationDate)
	}

	report, err := ctx.Engine.WeeklyReport(weekStart)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Week of %s", utils.FormatDate(report.WeekStartDate))))
	fmt.Printf("Total change: %s XP\n\n", signedStyle(report.TotalXPChange).Render(fmt.Sprintf("%+d", report.TotalXPChange)))

	for _, h := range report.Habits {
		fmt.Printf("%s  %s XP\n", titleStyle.Render(h.HabitName),
			signedStyle(h.TotalImpact).Render(fmt.Sprintf("%+d", h.TotalImpact)))

		for _, day := range h.Days {
			if day.Completions == 0 && day.Impact == 0 {
				continue
			}
			line := fmt.Sprintf("  %s  ×%d", day.Date.Format("Mon 02 Jan"), day.Completions)
			if day.Target > 0 && h.Kind == models.HabitBeneficial {
				line += fmt.Sprintf("/%d", day.Target)
			}
			if day.Impact != 0 {
				line += "  " + signedStyle(day.Impact).Render(fmt.Sprintf("%+d", day.Impact))
			}
			fmt.Println(line)
		}
		if h.WeeklyImpact != nil {
			fmt.Printf("  weekly target  %s\n", signedStyle(*h.WeeklyImpact).Render(fmt.Sprintf("%+d", *h.WeeklyImpact)))
		}
	}

	return nil
}
