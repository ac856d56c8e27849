package models

import "time"

type HabitKind string

const (
	HabitBeneficial  HabitKind = "beneficial"
	HabitDetrimental HabitKind = "detrimental"
)

type TargetType string

const (
	TargetNone   TargetType = ""
	TargetDaily  TargetType = "daily"
	TargetWeekly TargetType = "weekly"
)

// Habit represents a recurring practice to track. Beneficial habits award
// XP against a daily or weekly target; detrimental habits subtract XP for
// completions past a threshold. Tasks are tracked but never scored.
type Habit struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Kind               HabitKind  `json:"kind"`
	IsTask             bool       `json:"is_task"`
	XPValue            int        `json:"xp_value"`
	TargetType         TargetType `json:"target_type,omitempty"`
	TargetValue        int        `json:"target_value"`
	DailyThreshold     int        `json:"daily_threshold"`
	WeeklyThreshold    int        `json:"weekly_threshold"`
	ProportionalReward bool       `json:"proportional_reward"`
	SortOrder          int        `json:"sort_order"`
	CreatedAt          time.Time  `json:"created_at"`
	// DeletedFromDate is the soft-delete boundary: the habit is invisible
	// and inactive on and after this day. History before it still scores.
	DeletedFromDate *time.Time `json:"deleted_from_date,omitempty"`
}

// IsActiveOn reports whether the habit exists and is not yet deleted on the
// given day. Both createdAt and deletedFromDate are day-granularity; day
// must be normalized to start of day.
func (h Habit) IsActiveOn(day time.Time) bool {
	if day.Before(h.CreatedAt) {
		return false
	}
	if h.DeletedFromDate != nil && !day.Before(*h.DeletedFromDate) {
		return false
	}
	return true
}

// Completion records one instance of a habit being done on a day. Multiple
// completions per habit per day are allowed; scoring works on counts.
type Completion struct {
	ID            string    `json:"id"`
	HabitID       string    `json:"habit_id"`
	Date          time.Time `json:"date"`
	WeekStartDate time.Time `json:"week_start_date"`
	// AttemptID scopes the completion to one attempt. Empty means the
	// record predates attempts and is awaiting repair.
	AttemptID string `json:"attempt_id,omitempty"`
}
