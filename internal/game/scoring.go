package game

import (
	"fmt"
	"time"

	"github.com/amorozov/habitlife/internal/constants"
	"github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

// beneficialDailyImpact scores one day of a daily-target beneficial habit.
// Zero completions never penalize; full target earns the full XP value;
// partial progress earns a truncated share only when the habit is marked
// proportional.
func beneficialDailyImpact(h models.Habit, completions int) int {
	target := h.TargetValue
	if target <= 0 {
		target = 1
	}
	switch {
	case completions == 0:
		return 0
	case completions >= target:
		return h.XPValue
	case h.ProportionalReward:
		return h.XPValue * completions / target
	default:
		return 0
	}
}

// detrimentalDailyImpact penalizes completions past the per-day threshold,
// XP value per excess completion.
func detrimentalDailyImpact(h models.Habit, completions int) int {
	if completions > h.DailyThreshold {
		return -h.XPValue * (completions - h.DailyThreshold)
	}
	return 0
}

// beneficialWeeklyImpact scores a whole week of a weekly-target habit.
// A week with zero completions costs double the XP value.
func beneficialWeeklyImpact(h models.Habit, total int) int {
	if h.TargetValue <= 0 {
		return 0
	}
	switch {
	case total == 0:
		return -h.XPValue * constants.ZeroEffortPenaltyFactor
	case total >= h.TargetValue:
		return h.XPValue
	case h.ProportionalReward:
		return h.XPValue * total / h.TargetValue
	default:
		return 0
	}
}

// detrimentalWeeklyImpact penalizes weekly completions past the aggregate
// weekly threshold.
func detrimentalWeeklyImpact(h models.Habit, total int) int {
	if total > h.WeeklyThreshold {
		return -h.XPValue * (total - h.WeeklyThreshold)
	}
	return 0
}

// scoredDaily reports whether the habit contributes at day granularity.
// Detrimental habits with a weekly threshold settle once per week instead,
// so they are excluded here to avoid double counting.
func scoredDaily(h models.Habit) bool {
	if h.IsTask {
		return false
	}
	if h.Kind == models.HabitBeneficial {
		return h.TargetType == models.TargetDaily
	}
	return h.WeeklyThreshold == 0
}

// scoredWeekly reports whether the habit contributes at week granularity.
func scoredWeekly(h models.Habit) bool {
	if h.IsTask {
		return false
	}
	if h.Kind == models.HabitBeneficial {
		return h.TargetType == models.TargetWeekly
	}
	return h.WeeklyThreshold > 0
}

// dailyDelta computes the XP change for one day across the given habits.
func (e *Engine) dailyDelta(day time.Time, habits []models.Habit, attemptID string) (int, error) {
	delta := 0
	for _, h := range habits {
		if !scoredDaily(h) || !h.IsActiveOn(day) {
			continue
		}

		completions, err := e.habits.GetCompletionCount(h.ID, day, attemptID)
		if err != nil {
			return 0, fmt.Errorf("failed to get completions for habit %s: %w", h.ID, err)
		}

		if h.Kind == models.HabitBeneficial {
			delta += beneficialDailyImpact(h, completions)
		} else {
			delta += detrimentalDailyImpact(h, completions)
		}
	}
	return delta, nil
}

// weeklyDelta computes the XP change for weekly-scored habits over the
// week starting at weekStart. Completions are summed only over the days
// the habit was active (created on or before, not yet deleted).
func (e *Engine) weeklyDelta(weekStart time.Time, habits []models.Habit, attemptID string) (int, error) {
	delta := 0
	for _, h := range habits {
		if !scoredWeekly(h) {
			continue
		}

		counts, err := e.habits.GetDailyCompletionCounts(h.ID, weekStart, attemptID)
		if err != nil {
			return 0, fmt.Errorf("failed to get weekly completions for habit %s: %w", h.ID, err)
		}

		total, activeDays := sumActiveWindow(h, weekStart, counts)
		if activeDays == 0 {
			continue
		}

		if h.Kind == models.HabitBeneficial {
			delta += beneficialWeeklyImpact(h, total)
		} else {
			delta += detrimentalWeeklyImpact(h, total)
		}
	}
	return delta, nil
}

// sumActiveWindow sums per-day counts over the intersection of the week
// with the habit's active window, returning the total and the number of
// active days.
func sumActiveWindow(h models.Habit, weekStart time.Time, counts map[string]int) (total, activeDays int) {
	for i := 0; i < constants.DaysPerWeek; i++ {
		day := utils.AddDays(weekStart, i)
		if !h.IsActiveOn(day) {
			continue
		}
		activeDays++
		total += counts[utils.FormatDate(day)]
	}
	return total, activeDays
}

// DailyDelta computes the provisional XP change for a single day of the
// active attempt without persisting anything. Days before the attempt
// started contribute zero.
func (e *Engine) DailyDelta(date time.Time) (int, error) {
	attempt, err := e.games.GetActiveAttempt()
	if err != nil {
		return 0, err
	}
	if attempt == nil {
		return 0, fmt.Errorf("active attempt: %w", errors.ErrNotFound)
	}

	day := utils.StartOfDay(date)
	if day.Before(utils.StartOfDay(attempt.StartDate)) {
		return 0, nil
	}

	habits, err := e.habits.GetAllHabits(day, true)
	if err != nil {
		return 0, err
	}
	return e.dailyDelta(day, habits, attempt.ID)
}
