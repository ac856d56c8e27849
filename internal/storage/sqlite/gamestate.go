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

func (s *Store) GetGameState() (*models.GameState, error) {
	row := s.db.QueryRow(`
		SELECT current_lives, is_game_over, last_week_calculation_date, updated_at
		FROM game_state WHERE id = 1`)

	var state models.GameState
	var isGameOver int
	var lastWeek sql.NullString
	var updatedAt string

	err := row.Scan(&state.CurrentLives, &isGameOver, &lastWeek, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan game state: %w", err)
	}

	state.IsGameOver = isGameOver != 0
	if lastWeek.Valid {
		t, err := utils.ParseDate(lastWeek.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_week_calculation_date: %w", err)
		}
		state.LastWeekCalculationDate = &t
	}
	state.UpdatedAt, err = time.Parse(constants.TimestampFormat, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &state, nil
}

func (s *Store) SaveGameState(state models.GameState) error {
	lastWeek := sql.NullString{}
	if state.LastWeekCalculationDate != nil {
		lastWeek = sql.NullString{String: utils.FormatDate(*state.LastWeekCalculationDate), Valid: true}
	}

	// Lives never go below zero in storage.
	lives := state.CurrentLives
	if lives < 0 {
		lives = 0
	}

	_, err := s.db.Exec(`
		INSERT INTO game_state (id, current_lives, is_game_over, last_week_calculation_date, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_lives = excluded.current_lives,
			is_game_over = excluded.is_game_over,
			last_week_calculation_date = excluded.last_week_calculation_date,
			updated_at = excluded.updated_at`,
		lives, boolToInt(state.IsGameOver), lastWeek,
		state.UpdatedAt.UTC().Format(constants.TimestampFormat))
	if err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	return nil
}
