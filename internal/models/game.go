package models

import "time"

// Attempt is one play-through: from full (or reset) lives until either a
// manual reset or the life total reaching zero. At most one attempt is
// active at a time.
type Attempt struct {
	ID            string     `json:"id"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	StartingLives int        `json:"starting_lives"`
	EndingLives   *int       `json:"ending_lives,omitempty"`
	IsActive      bool       `json:"is_active"`
}

// GameState is the singleton cumulative score for the active attempt.
// CurrentLives is clamped to >= 0 on write; LastWeekCalculationDate marks
// the most recent week-end already settled.
type GameState struct {
	CurrentLives            int        `json:"current_lives"`
	IsGameOver              bool       `json:"is_game_over"`
	LastWeekCalculationDate *time.Time `json:"last_week_calculation_date,omitempty"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// LifePoint is the settled XP delta for one week of one attempt. Date is
// the week-end marker. Saving again for the same week and attempt
// overwrites value and date instead of duplicating.
type LifePoint struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Value         int       `json:"value"`
	WeekStartDate time.Time `json:"week_start_date"`
	AttemptID     string    `json:"attempt_id"`
}
