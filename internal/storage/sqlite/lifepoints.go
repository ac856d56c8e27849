package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

func (s *Store) SaveLifePoint(lp models.LifePoint) error {
	attempt := sql.NullString{}
	if lp.AttemptID != "" {
		attempt = sql.NullString{String: lp.AttemptID, Valid: true}
	}

	// One record per week per attempt: replaying a settlement overwrites
	// value and date instead of inserting a duplicate.
	_, err := s.db.Exec(`
		INSERT INTO life_points (id, date, value, week_start_date, attempt_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(week_start_date, attempt_id) DO UPDATE SET
			date = excluded.date,
			value = excluded.value`,
		lp.ID, utils.FormatDate(lp.Date), lp.Value,
		utils.FormatDate(lp.WeekStartDate), attempt)
	if err != nil {
		return fmt.Errorf("failed to save life point: %w", err)
	}
	return nil
}

func (s *Store) GetLifePointForWeek(weekStart time.Time, attemptID string) (*models.LifePoint, error) {
	row := s.db.QueryRow(`
		SELECT id, date, value, week_start_date, attempt_id
		FROM life_points WHERE week_start_date = ? AND attempt_id = ?`,
		utils.FormatDate(weekStart), attemptID)

	lp, err := scanLifePoint(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lp, nil
}

func (s *Store) GetLifePoints(attemptID string) ([]models.LifePoint, error) {
	rows, err := s.db.Query(`
		SELECT id, date, value, week_start_date, attempt_id
		FROM life_points WHERE attempt_id = ?
		ORDER BY week_start_date`, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query life points: %w", err)
	}
	defer rows.Close()

	var points []models.LifePoint
	for rows.Next() {
		lp, err := scanLifePoint(rows)
		if err != nil {
			return nil, err
		}
		points = append(points, lp)
	}
	return points, rows.Err()
}

func (s *Store) LinkOrphanLifePoints(attemptID string) (int, error) {
	res, err := s.db.Exec(`UPDATE life_points SET attempt_id = ? WHERE attempt_id IS NULL`, attemptID)
	if err != nil {
		return 0, fmt.Errorf("failed to link orphan life points: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func scanLifePoint(row scannable) (models.LifePoint, error) {
	var lp models.LifePoint
	var date, weekStart string
	var attempt sql.NullString

	err := row.Scan(&lp.ID, &date, &lp.Value, &weekStart, &attempt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LifePoint{}, err
		}
		return models.LifePoint{}, fmt.Errorf("failed to scan life point: %w", err)
	}

	lp.Date, err = utils.ParseDate(date)
	if err != nil {
		return models.LifePoint{}, fmt.Errorf("failed to parse life point date: %w", err)
	}
	lp.WeekStartDate, err = utils.ParseDate(weekStart)
	if err != nil {
		return models.LifePoint{}, fmt.Errorf("failed to parse week_start_date: %w", err)
	}
	if attempt.Valid {
		lp.AttemptID = attempt.String
	}

	return lp, nil
}
