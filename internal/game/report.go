package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/amorozov/habitlife/internal/constants"
	"github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

// WeeklyReport reconstructs the per-habit, per-day impact breakdown for a
// settled week of the active attempt, so a user can audit why the score
// changed. It applies the same scoring rules as settlement rather than
// reading persisted deltas back, and orders habits by absolute impact,
// largest first.
func (e *Engine) WeeklyReport(weekStart time.Time) (*models.WeeklyReport, error) {
	weekStart = utils.WeekStart(weekStart)

	attempt, err := e.games.GetActiveAttempt()
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, fmt.Errorf("active attempt: %w", errors.ErrNotFound)
	}

	lifePoint, err := e.games.GetLifePointForWeek(weekStart, attempt.ID)
	if err != nil {
		return nil, err
	}
	if lifePoint == nil {
		return nil, fmt.Errorf("week %s not settled: %w", utils.FormatDate(weekStart), errors.ErrNotFound)
	}

	weekEnd := utils.WeekEnd(weekStart)
	habits, err := e.habits.GetAllHabits(weekEnd, true)
	if err != nil {
		return nil, err
	}

	var analyses []models.HabitWeeklyAnalysis
	for _, h := range habits {
		if h.IsTask {
			continue
		}

		analysis, ok, err := e.analyzeHabitWeek(h, weekStart, attempt.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			analyses = append(analyses, analysis)
		}
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return abs(analyses[i].TotalImpact) > abs(analyses[j].TotalImpact)
	})

	return &models.WeeklyReport{
		WeekStartDate: weekStart,
		TotalXPChange: lifePoint.Value,
		Habits:        analyses,
	}, nil
}

func (e *Engine) analyzeHabitWeek(h models.Habit, weekStart time.Time, attemptID string) (models.HabitWeeklyAnalysis, bool, error) {
	counts, err := e.habits.GetDailyCompletionCounts(h.ID, weekStart, attemptID)
	if err != nil {
		return models.HabitWeeklyAnalysis{}, false, err
	}

	analysis := models.HabitWeeklyAnalysis{
		HabitID:   h.ID,
		HabitName: h.Name,
		Kind:      h.Kind,
	}

	activeDays := 0
	total := 0
	for i := 0; i < constants.DaysPerWeek; i++ {
		day := utils.AddDays(weekStart, i)
		completions := counts[utils.FormatDate(day)]

		status := models.HabitDayStatus{
			Date:        day,
			Completions: completions,
		}

		if h.IsActiveOn(day) {
			activeDays++
			total += completions
			status.Target, status.Impact = dayTargetAndImpact(h, completions)
		}

		analysis.Days = append(analysis.Days, status)
		analysis.TotalImpact += status.Impact
	}

	// Habit never active during this week: leave it out entirely.
	if activeDays == 0 {
		return models.HabitWeeklyAnalysis{}, false, nil
	}

	if scoredWeekly(h) {
		var impact int
		if h.Kind == models.HabitBeneficial {
			impact = beneficialWeeklyImpact(h, total)
		} else {
			impact = detrimentalWeeklyImpact(h, total)
		}
		analysis.WeeklyImpact = &impact
		analysis.TotalImpact += impact
	}

	return analysis, true, nil
}

// dayTargetAndImpact mirrors the daily scoring rules for display: the
// effective target shown and the XP impact of that day.
func dayTargetAndImpact(h models.Habit, completions int) (target, impact int) {
	if !scoredDaily(h) {
		return 0, 0
	}
	if h.Kind == models.HabitBeneficial {
		target = h.TargetValue
		if target <= 0 {
			target = 1
		}
		return target, beneficialDailyImpact(h, completions)
	}
	return h.DailyThreshold, detrimentalDailyImpact(h, completions)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
