package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amorozov/habitlife/internal/constants"
	"github.com/amorozov/habitlife/internal/models"
)

const attemptColumns = `id, start_date, end_date, starting_lives, ending_lives, is_active`

func (s *Store) CreateAttempt(a models.Attempt) error {
	endDate, endingLives := attemptOptionals(a)
	_, err := s.db.Exec(`
		INSERT INTO attempts (`+attemptColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.StartDate.UTC().Format(constants.TimestampFormat),
		endDate, a.StartingLives, endingLives, boolToInt(a.IsActive))
	if err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

func (s *Store) UpdateAttempt(a models.Attempt) error {
	endDate, endingLives := attemptOptionals(a)
	res, err := s.db.Exec(`
		UPDATE attempts SET start_date = ?, end_date = ?, starting_lives = ?,
			ending_lives = ?, is_active = ?
		WHERE id = ?`,
		a.StartDate.UTC().Format(constants.TimestampFormat),
		endDate, a.StartingLives, endingLives, boolToInt(a.IsActive), a.ID)
	if err != nil {
		return fmt.Errorf("failed to update attempt: %w", err)
	}
	return requireRow(res, "attempt")
}

func (s *Store) GetActiveAttempt() (*models.Attempt, error) {
	row := s.db.QueryRow(`SELECT ` + attemptColumns + ` FROM attempts WHERE is_active = 1`)
	a, err := scanAttempt(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetAllAttempts() ([]models.Attempt, error) {
	rows, err := s.db.Query(`SELECT ` + attemptColumns + ` FROM attempts ORDER BY start_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *Store) DeleteAttempt(id string) error {
	res, err := s.db.Exec(`DELETE FROM attempts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attempt: %w", err)
	}
	return requireRow(res, "attempt")
}

func attemptOptionals(a models.Attempt) (sql.NullString, sql.NullInt64) {
	endDate := sql.NullString{}
	if a.EndDate != nil {
		endDate = sql.NullString{String: a.EndDate.UTC().Format(constants.TimestampFormat), Valid: true}
	}
	endingLives := sql.NullInt64{}
	if a.EndingLives != nil {
		endingLives = sql.NullInt64{Int64: int64(*a.EndingLives), Valid: true}
	}
	return endDate, endingLives
}

func scanAttempt(row scannable) (models.Attempt, error) {
	var a models.Attempt
	var startDate string
	var endDate sql.NullString
	var endingLives sql.NullInt64
	var isActive int

	err := row.Scan(&a.ID, &startDate, &endDate, &a.StartingLives, &endingLives, &isActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Attempt{}, err
		}
		return models.Attempt{}, fmt.Errorf("failed to scan attempt: %w", err)
	}

	a.StartDate, err = time.Parse(constants.TimestampFormat, startDate)
	if err != nil {
		return models.Attempt{}, fmt.Errorf("failed to parse start_date: %w", err)
	}
	if endDate.Valid {
		t, err := time.Parse(constants.TimestampFormat, endDate.String)
		if err != nil {
			return models.Attempt{}, fmt.Errorf("failed to parse end_date: %w", err)
		}
		a.EndDate = &t
	}
	if endingLives.Valid {
		n := int(endingLives.Int64)
		a.EndingLives = &n
	}
	a.IsActive = isActive != 0

	return a, nil
}
