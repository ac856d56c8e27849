package models

import "time"

// HabitDayStatus is one day of one habit in a weekly report: how many
// completions were logged, what the target was, and the resulting XP
// impact for that day.
type HabitDayStatus struct {
	Date        time.Time `json:"date"`
	Completions int       `json:"completions"`
	Target      int       `json:"target"`
	Impact      int       `json:"impact"`
}

// HabitWeeklyAnalysis breaks down one habit's contribution to a settled
// week. WeeklyImpact is set only for habits scored at week granularity
// (weekly-target beneficial habits and threshold detrimental habits).
type HabitWeeklyAnalysis struct {
	HabitID      string           `json:"habit_id"`
	HabitName    string           `json:"habit_name"`
	Kind         HabitKind        `json:"kind"`
	TotalImpact  int              `json:"total_impact"`
	Days         []HabitDayStatus `json:"days"`
	WeeklyImpact *int             `json:"weekly_impact,omitempty"`
}

// WeeklyReport is the audit view for one settled week, ordered by absolute
// impact magnitude descending.
type WeeklyReport struct {
	WeekStartDate time.Time             `json:"week_start_date"`
	TotalXPChange int                   `json:"total_xp_change"`
	Habits        []HabitWeeklyAnalysis `json:"habits"`
}
