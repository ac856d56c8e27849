// Package game implements the life-points engine: daily and weekly XP
// scoring, week settlement, missed-week catch-up, and the attempt
// lifecycle. All operations are synchronous and deterministic over
// repository state; callers must serialize settlement and catch-up per
// attempt.
package game

import (
	"time"

	"github.com/amorozov/habitlife/internal/models"
)

// HabitRepository is the read contract over habits and completions.
type HabitRepository interface {
	GetAllHabits(asOf time.Time, includeDeleted bool) ([]models.Habit, error)
	GetCompletionCount(habitID string, date time.Time, attemptID string) (int, error)
	GetDailyCompletionCounts(habitID string, weekStart time.Time, attemptID string) (map[string]int, error)
	GetWeeklyCompletionCount(habitID string, weekStart time.Time, attemptID string) (int, error)
}

// GameRepository is the contract over attempts, game state, and life
// points. GetActiveAttempt and GetGameState return nil without error when
// the record does not exist.
type GameRepository interface {
	GetActiveAttempt() (*models.Attempt, error)
	CreateAttempt(models.Attempt) error
	UpdateAttempt(models.Attempt) error
	GetAllAttempts() ([]models.Attempt, error)
	DeleteAttempt(id string) error

	GetGameState() (*models.GameState, error)
	SaveGameState(models.GameState) error

	SaveLifePoint(models.LifePoint) error
	GetLifePointForWeek(weekStart time.Time, attemptID string) (*models.LifePoint, error)
	GetLifePoints(attemptID string) ([]models.LifePoint, error)
}

// RepairRepository exposes the orphan-record healing hooks used by Repair.
type RepairRepository interface {
	GetEarliestOrphanDate() (*time.Time, error)
	LinkOrphanCompletions(attemptID string) (int, error)
	LinkOrphanLifePoints(attemptID string) (int, error)
}

// Engine ties the scoring rules to the repositories.
type Engine struct {
	habits HabitRepository
	games  GameRepository
	repair RepairRepository

	// Now is the clock used for "today" and write timestamps. Tests
	// override it to pin the current week.
	Now func() time.Time
}

func NewEngine(habits HabitRepository, games GameRepository, repair RepairRepository) *Engine {
	return &Engine{
		habits: habits,
		games:  games,
		repair: repair,
		Now:    time.Now,
	}
}
