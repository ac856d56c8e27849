package game

import (
	"testing"
	"time"

	"github.com/amorozov/habitlife/internal/errors"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

func TestSettleWeek_DetrimentalScenario(t *testing.T) {
	// One detrimental habit (xp 5, no thresholds) completed twice on one
	// day, zero other activity: the week costs exactly 10 lives.
	monday := date(2026, time.January, 5)
	f := newFakeStore()
	f.startAttempt("a1", monday, 100)
	f.habits = []models.Habit{{
		ID: "smoke", Name: "smoking", Kind: models.HabitDetrimental,
		XPValue: 5, CreatedAt: date(2026, time.January, 1),
	}}
	f.complete("smoke", date(2026, time.January, 7), "a1", 2)

	e := newTestEngine(f, date(2026, time.January, 14))
	if err := e.SettleWeek(monday); err != nil {
		t.Fatalf("SettleWeek failed: %v", err)
	}

	lp, err := f.GetLifePointForWeek(monday, "a1")
	if err != nil || lp == nil {
		t.Fatalf("life point not persisted: %v", err)
	}
	if lp.Value != -10 {
		t.Errorf("LifePoint.Value = %d, want -10", lp.Value)
	}
	if !lp.Date.Equal(utils.WeekEnd(monday)) {
		t.Errorf("LifePoint.Date = %v, want week end %v", lp.Date, utils.WeekEnd(monday))
	}

	if f.state.CurrentLives != 90 {
		t.Errorf("CurrentLives = %d, want 90", f.state.CurrentLives)
	}
	if f.state.IsGameOver {
		t.Error("IsGameOver = true, want false")
	}
	if f.state.LastWeekCalculationDate == nil || !f.state.LastWeekCalculationDate.Equal(utils.WeekEnd(monday)) {
		t.Errorf("LastWeekCalculationDate = %v, want %v", f.state.LastWeekCalculationDate, utils.WeekEnd(monday))
	}
}

func TestSettleWeek_GameOverClosesAttempt(t *testing.T) {
	monday := date(2026, time.January, 5)
	f := newFakeStore()
	f.startAttempt("a1", monday, 100)
	f.habits = []models.Habit{{
		ID: "binge", Kind: models.HabitDetrimental,
		XPValue: 50, CreatedAt: monday,
	}}
	f.complete("binge", date(2026, time.January, 6), "a1", 2)

	e := newTestEngine(f, date(2026, time.January, 14))
	if err := e.SettleWeek(monday); err != nil {
		t.Fatalf("SettleWeek failed: %v", err)
	}

	if f.state.CurrentLives != 0 {
		t.Errorf("CurrentLives = %d, want 0 (clamped)", f.state.CurrentLives)
	}
	if !f.state.IsGameOver {
		t.Error("IsGameOver = false, want true")
	}

	attempt := f.attempts[0]
	if attempt.IsActive {
		t.Error("attempt still active after game over")
	}
	if attempt.EndingLives == nil || *attempt.EndingLives != 0 {
		t.Errorf("EndingLives = %v, want 0", attempt.EndingLives)
	}
	if attempt.EndDate == nil || !attempt.EndDate.Equal(utils.WeekEnd(monday)) {
		t.Errorf("EndDate = %v, want week end", attempt.EndDate)
	}
}

func TestSettleWeek_NoGameState(t *testing.T) {
	f := newFakeStore()
	e := newTestEngine(f, date(2026, time.January, 14))

	err := e.SettleWeek(date(2026, time.January, 5))
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("SettleWeek with no game state = %v, want ErrNotFound", err)
	}
}

func TestSettleWeek_BeforeAttemptStart(t *testing.T) {
	f := newFakeStore()
	f.startAttempt("a1", date(2026, time.January, 12), 100)

	e := newTestEngine(f, date(2026, time.January, 20))
	err := e.SettleWeek(date(2025, time.December, 29))
	if !errors.Is(err, errors.ErrInvalidState) {
		t.Errorf("SettleWeek before attempt start = %v, want ErrInvalidState", err)
	}
}

func TestSettleWeek_SkipsDaysBeforeAttemptStart(t *testing.T) {
	// Attempt starts Thursday; Monday's completions of the same week are
	// out of scope.
	monday := date(2026, time.January, 5)
	thursday := date(2026, time.January, 8)
	f := newFakeStore()
	f.startAttempt("a1", thursday, 100)
	f.habits = []models.Habit{{
		ID: "smoke", Kind: models.HabitDetrimental,
		XPValue: 5, CreatedAt: date(2026, time.January, 1),
	}}
	f.complete("smoke", monday, "a1", 4)
	f.complete("smoke", date(2026, time.January, 9), "a1", 1)

	e := newTestEngine(f, date(2026, time.January, 14))
	if err := e.SettleWeek(monday); err != nil {
		t.Fatalf("SettleWeek failed: %v", err)
	}

	if f.state.CurrentLives != 95 {
		t.Errorf("CurrentLives = %d, want 95 (only Friday's completion counts)", f.state.CurrentLives)
	}
}

func TestSettleWeek_LifePointFailureLeavesStateUntouched(t *testing.T) {
	monday := date(2026, time.January, 5)
	f := newFakeStore()
	f.startAttempt("a1", monday, 100)
	f.habits = []models.Habit{{
		ID: "smoke", Kind: models.HabitDetrimental,
		XPValue: 5, CreatedAt: monday,
	}}
	f.complete("smoke", monday, "a1", 3)
	f.failLifePointWeek = utils.FormatDate(monday)

	e := newTestEngine(f, date(2026, time.January, 14))
	if err := e.SettleWeek(monday); err == nil {
		t.Fatal("SettleWeek succeeded despite life point write failure")
	}

	if f.state.CurrentLives != 100 {
		t.Errorf("CurrentLives = %d, want 100 (no partial write)", f.state.CurrentLives)
	}
	if f.state.LastWeekCalculationDate != nil {
		t.Error("LastWeekCalculationDate advanced despite failure")
	}
}

func TestSettleWeek_ReplaysOverwriteLifePoint(t *testing.T) {
	// Settling the same week twice double-applies the delta but must not
	// duplicate the life point record.
	monday := date(2026, time.January, 5)
	f := newFakeStore()
	f.startAttempt("a1", monday, 100)
	f.habits = []models.Habit{{
		ID: "smoke", Kind: models.HabitDetrimental,
		XPValue: 5, CreatedAt: monday,
	}}
	f.complete("smoke", monday, "a1", 1)

	e := newTestEngine(f, date(2026, time.January, 14))
	if err := e.SettleWeek(monday); err != nil {
		t.Fatalf("first SettleWeek failed: %v", err)
	}
	if err := e.SettleWeek(monday); err != nil {
		t.Fatalf("second SettleWeek failed: %v", err)
	}

	points, _ := f.GetLifePoints("a1")
	if len(points) != 1 {
		t.Fatalf("life point count = %d, want 1 (upsert, not duplicate)", len(points))
	}
	if f.state.CurrentLives != 90 {
		t.Errorf("CurrentLives = %d, want 90 (delta applied twice)", f.state.CurrentLives)
	}
}
