package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

const habitColumns = `id, name, kind, is_task, xp_value, target_type, target_value,
	daily_threshold, weekly_threshold, proportional_reward, sort_order,
	created_at, deleted_from_date`

func (s *Store) AddHabit(h models.Habit) error {
	deleted := sql.NullString{}
	if h.DeletedFromDate != nil {
		deleted = sql.NullString{String: utils.FormatDate(*h.DeletedFromDate), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, string(h.Kind), boolToInt(h.IsTask), h.XPValue,
		string(h.TargetType), h.TargetValue, h.DailyThreshold, h.WeeklyThreshold,
		boolToInt(h.ProportionalReward), h.SortOrder,
		utils.FormatDate(h.CreatedAt), deleted)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = ? AND deleted_from_date IS NULL`, name)
	return scanHabit(row)
}

func (s *Store) GetAllHabits(asOf time.Time, includeDeleted bool) ([]models.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits`
	args := []any{}
	if !includeDeleted {
		query += ` WHERE deleted_from_date IS NULL OR deleted_from_date > ?`
		args = append(args, utils.FormatDate(asOf))
	}
	query += ` ORDER BY sort_order, created_at`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(h models.Habit) error {
	deleted := sql.NullString{}
	if h.DeletedFromDate != nil {
		deleted = sql.NullString{String: utils.FormatDate(*h.DeletedFromDate), Valid: true}
	}

	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, kind = ?, is_task = ?, xp_value = ?,
			target_type = ?, target_value = ?, daily_threshold = ?,
			weekly_threshold = ?, proportional_reward = ?, sort_order = ?,
			created_at = ?, deleted_from_date = ?
		WHERE id = ?`,
		h.Name, string(h.Kind), boolToInt(h.IsTask), h.XPValue,
		string(h.TargetType), h.TargetValue, h.DailyThreshold,
		h.WeeklyThreshold, boolToInt(h.ProportionalReward), h.SortOrder,
		utils.FormatDate(h.CreatedAt), deleted, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, "habit")
}

func (s *Store) SoftDeleteHabit(id string, from time.Time) error {
	res, err := s.db.Exec(`UPDATE habits SET deleted_from_date = ? WHERE id = ?`,
		utils.FormatDate(from), id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return requireRow(res, "habit")
}

func (s *Store) RestoreHabit(id string) error {
	res, err := s.db.Exec(`UPDATE habits SET deleted_from_date = NULL WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to restore habit: %w", err)
	}
	return requireRow(res, "habit")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanHabit(row scannable) (models.Habit, error) {
	var h models.Habit
	var kind, targetType, createdAt string
	var isTask, proportional int
	var deleted sql.NullString

	err := row.Scan(&h.ID, &h.Name, &kind, &isTask, &h.XPValue, &targetType,
		&h.TargetValue, &h.DailyThreshold, &h.WeeklyThreshold, &proportional,
		&h.SortOrder, &createdAt, &deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, fmt.Errorf("habit: %w", apperrors.ErrNotFound)
		}
		return models.Habit{}, fmt.Errorf("failed to scan habit: %w", err)
	}

	h.Kind = models.HabitKind(kind)
	h.TargetType = models.TargetType(targetType)
	h.IsTask = isTask != 0
	h.ProportionalReward = proportional != 0

	h.CreatedAt, err = utils.ParseDate(createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if deleted.Valid {
		t, err := utils.ParseDate(deleted.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_from_date: %w", err)
		}
		h.DeletedFromDate = &t
	}

	return h, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, apperrors.ErrNotFound)
	}
	return nil
}
