package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amorozov/habitlife/internal/constants"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

func (s *Store) AddCompletion(c models.Completion) error {
	attempt := sql.NullString{}
	if c.AttemptID != "" {
		attempt = sql.NullString{String: c.AttemptID, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO completions (id, habit_id, date, week_start_date, attempt_id)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.HabitID, utils.FormatDate(c.Date),
		utils.FormatDate(c.WeekStartDate), attempt)
	if err != nil {
		return fmt.Errorf("failed to add completion: %w", err)
	}
	return nil
}

func (s *Store) DeleteLatestCompletion(habitID string, date time.Time, attemptID string) error {
	// rowid preserves insertion order within a day
	res, err := s.db.Exec(`
		DELETE FROM completions WHERE rowid = (
			SELECT rowid FROM completions
			WHERE habit_id = ? AND date = ? AND attempt_id = ?
			ORDER BY rowid DESC LIMIT 1
		)`, habitID, utils.FormatDate(date), attemptID)
	if err != nil {
		return fmt.Errorf("failed to delete completion: %w", err)
	}
	return requireRow(res, "completion")
}

func (s *Store) GetCompletionCount(habitID string, date time.Time, attemptID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT count(*) FROM completions
		WHERE habit_id = ? AND date = ? AND attempt_id = ?`,
		habitID, utils.FormatDate(date), attemptID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}

func (s *Store) GetDailyCompletionCounts(habitID string, weekStart time.Time, attemptID string) (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT date, count(*) FROM completions
		WHERE habit_id = ? AND week_start_date = ? AND attempt_id = ?
		GROUP BY date`,
		habitID, utils.FormatDate(weekStart), attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily completion counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int, constants.DaysPerWeek)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan completion count: %w", err)
		}
		counts[day] = count
	}
	return counts, rows.Err()
}

func (s *Store) GetWeeklyCompletionCount(habitID string, weekStart time.Time, attemptID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT count(*) FROM completions
		WHERE habit_id = ? AND week_start_date = ? AND attempt_id = ?`,
		habitID, utils.FormatDate(weekStart), attemptID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count weekly completions: %w", err)
	}
	return count, nil
}

// GetEarliestOrphanDate returns the earliest date among completions and
// life points that have no attempt reference, or nil when there are none.
func (s *Store) GetEarliestOrphanDate() (*time.Time, error) {
	var earliest sql.NullString
	err := s.db.QueryRow(`
		SELECT min(date) FROM (
			SELECT date FROM completions WHERE attempt_id IS NULL
			UNION ALL
			SELECT date FROM life_points WHERE attempt_id IS NULL
		)`).Scan(&earliest)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query orphan records: %w", err)
	}
	if !earliest.Valid {
		return nil, nil
	}

	t, err := utils.ParseDate(earliest.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse orphan date: %w", err)
	}
	return &t, nil
}

func (s *Store) LinkOrphanCompletions(attemptID string) (int, error) {
	res, err := s.db.Exec(`UPDATE completions SET attempt_id = ? WHERE attempt_id IS NULL`, attemptID)
	if err != nil {
		return 0, fmt.Errorf("failed to link orphan completions: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}
