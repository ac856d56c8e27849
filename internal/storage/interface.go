package storage

import (
	"time"

	"github.com/amorozov/habitlife/internal/models"
)

// Provider is the persistence contract consumed by the CLI and the game
// engine. Day-granularity parameters must be normalized to start of day.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	// GetAllHabits returns habits ordered by sort order. When
	// includeDeleted is false, habits whose deleted_from_date has passed
	// asOf are excluded.
	GetAllHabits(asOf time.Time, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// SoftDeleteHabit marks the habit inactive on and after the given day.
	SoftDeleteHabit(id string, from time.Time) error
	RestoreHabit(id string) error

	// Completions
	AddCompletion(models.Completion) error
	// DeleteLatestCompletion removes the most recently added completion
	// for the habit on the given day within the attempt.
	DeleteLatestCompletion(habitID string, date time.Time, attemptID string) error
	GetCompletionCount(habitID string, date time.Time, attemptID string) (int, error)
	// GetDailyCompletionCounts returns per-day counts for the week
	// starting at weekStart, keyed by YYYY-MM-DD date string.
	GetDailyCompletionCounts(habitID string, weekStart time.Time, attemptID string) (map[string]int, error)
	GetWeeklyCompletionCount(habitID string, weekStart time.Time, attemptID string) (int, error)

	// Attempts
	CreateAttempt(models.Attempt) error
	UpdateAttempt(models.Attempt) error
	// GetActiveAttempt returns nil without error when no attempt is active.
	GetActiveAttempt() (*models.Attempt, error)
	GetAllAttempts() ([]models.Attempt, error)
	DeleteAttempt(id string) error

	// Game state (singleton). GetGameState returns nil without error when
	// the game has never been initialized.
	GetGameState() (*models.GameState, error)
	SaveGameState(models.GameState) error

	// Life points. SaveLifePoint upserts by (weekStartDate, attemptID).
	SaveLifePoint(models.LifePoint) error
	GetLifePointForWeek(weekStart time.Time, attemptID string) (*models.LifePoint, error)
	GetLifePoints(attemptID string) ([]models.LifePoint, error)

	// Orphan repair: records persisted before attempts existed carry a
	// NULL attempt reference until linked.
	GetEarliestOrphanDate() (*time.Time, error)
	LinkOrphanCompletions(attemptID string) (int, error)
	LinkOrphanLifePoints(attemptID string) (int, error)
}
