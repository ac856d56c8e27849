package game

import (
	"testing"
	"time"

	"github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/models"
)

func TestStartAttempt(t *testing.T) {
	t.Run("creates attempt and game state", func(t *testing.T) {
		f := newFakeStore()
		e := newTestEngine(f, date(2026, time.March, 2))

		attempt, err := e.StartAttempt(100)
		if err != nil {
			t.Fatalf("StartAttempt failed: %v", err)
		}
		if !attempt.IsActive {
			t.Error("new attempt is not active")
		}
		if f.state == nil || f.state.CurrentLives != 100 {
			t.Errorf("game state not initialized with 100 lives: %+v", f.state)
		}
		if f.state.LastWeekCalculationDate != nil {
			t.Error("fresh attempt must have no settled weeks")
		}
	})

	t.Run("fails when one is already active", func(t *testing.T) {
		f := newFakeStore()
		f.startAttempt("a1", date(2026, time.March, 2), 100)
		e := newTestEngine(f, date(2026, time.March, 2))

		if _, err := e.StartAttempt(100); !errors.Is(err, errors.ErrInvalidState) {
			t.Errorf("StartAttempt with active attempt = %v, want ErrInvalidState", err)
		}
	})
}

func TestResetGame(t *testing.T) {
	now := date(2026, time.March, 10)
	f := newFakeStore()
	f.startAttempt("a1", date(2026, time.February, 2), 100)
	f.state.CurrentLives = 37

	e := newTestEngine(f, now)
	attempt, err := e.ResetGame()
	if err != nil {
		t.Fatalf("ResetGame failed: %v", err)
	}

	old := f.attempts[0]
	if old.IsActive {
		t.Error("old attempt still active after reset")
	}
	if old.EndingLives == nil || *old.EndingLives != 37 {
		t.Errorf("old attempt EndingLives = %v, want 37", old.EndingLives)
	}
	if old.EndDate == nil || !old.EndDate.Equal(now) {
		t.Errorf("old attempt EndDate = %v, want %v", old.EndDate, now)
	}

	if attempt.ID == old.ID {
		t.Error("reset reused the old attempt")
	}
	if f.state.CurrentLives != 100 || f.state.IsGameOver {
		t.Errorf("game state after reset = %+v, want 100 lives and not game over", f.state)
	}
	if f.state.LastWeekCalculationDate != nil {
		t.Error("LastWeekCalculationDate not cleared by reset")
	}
}

func TestResetGame_NoActiveAttempt(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f, date(2026, time.March, 10))

	attempt, err := e.ResetGame()
	if err != nil {
		t.Fatalf("ResetGame without active attempt failed: %v", err)
	}
	if attempt == nil || !attempt.IsActive {
		t.Error("ResetGame did not create an active attempt")
	}
}

func TestForceReset(t *testing.T) {
	t.Run("restores starting lives and clears settlement marker", func(t *testing.T) {
		f := newFakeStore()
		f.startAttempt("a1", date(2026, time.February, 2), 80)
		last := date(2026, time.February, 8)
		f.state.CurrentLives = 3
		f.state.IsGameOver = true
		f.state.LastWeekCalculationDate = &last

		e := newTestEngine(f, date(2026, time.March, 10))
		if err := e.ForceReset(); err != nil {
			t.Fatalf("ForceReset failed: %v", err)
		}

		if f.state.CurrentLives != 80 {
			t.Errorf("CurrentLives = %d, want 80", f.state.CurrentLives)
		}
		if f.state.IsGameOver {
			t.Error("IsGameOver not cleared")
		}
		if f.state.LastWeekCalculationDate != nil {
			t.Error("LastWeekCalculationDate not cleared; stale weeks would replay")
		}
		if len(f.attempts) != 1 {
			t.Errorf("attempt count = %d, want 1 (no new attempt)", len(f.attempts))
		}
	})

	t.Run("fails without active attempt", func(t *testing.T) {
		f := newFakeStore()
		e := newTestEngine(f, date(2026, time.March, 10))
		if err := e.ForceReset(); !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("ForceReset = %v, want ErrNotFound", err)
		}
	})
}

func TestDeleteAttempt_RefusesActive(t *testing.T) {
	f := newFakeStore()
	f.startAttempt("a1", date(2026, time.February, 2), 100)

	e := newTestEngine(f, date(2026, time.March, 10))
	if err := e.DeleteAttempt("a1"); !errors.Is(err, errors.ErrInvalidState) {
		t.Errorf("DeleteAttempt(active) = %v, want ErrInvalidState", err)
	}
	if len(f.attempts) != 1 {
		t.Error("active attempt was deleted")
	}
}

func TestCleanupSameDayAttempts(t *testing.T) {
	day := date(2026, time.February, 10)
	otherDay := date(2026, time.February, 11)
	lives := 0

	f := newFakeStore()
	f.attempts = []models.Attempt{
		{ID: "same-day", StartDate: day, EndDate: &day, EndingLives: &lives},
		{ID: "other-day", StartDate: otherDay, EndDate: &otherDay, EndingLives: &lives},
		{ID: "spans-days", StartDate: day, EndDate: &otherDay, EndingLives: &lives},
		{ID: "open", StartDate: day},
	}
	f.startAttempt("active", day, 100)

	e := newTestEngine(f, date(2026, time.March, 10))
	deleted, err := e.CleanupSameDayAttempts(day)
	if err != nil {
		t.Fatalf("CleanupSameDayAttempts failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	for _, a := range f.attempts {
		if a.ID == "same-day" {
			t.Error("same-day attempt not deleted")
		}
	}
	if len(f.attempts) != 4 {
		t.Errorf("remaining attempts = %d, want 4", len(f.attempts))
	}
}
