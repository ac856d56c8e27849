package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/amorozov/habitlife/internal/constants"
	"github.com/amorozov/habitlife/internal/models"
	"github.com/amorozov/habitlife/internal/utils"
)

// fakeStore is an in-memory implementation of the engine's repository
// interfaces used across the engine tests.
type fakeStore struct {
	habits      []models.Habit
	completions map[string]int // habitID|date|attemptID -> count

	attempts   []models.Attempt
	state      *models.GameState
	lifePoints map[string]models.LifePoint // weekStart|attemptID

	orphanCompletionDates []time.Time
	orphanLifePointDates  []time.Time
	linkedCompletions     map[string]int
	linkedLifePoints      map[string]int

	// failLifePointWeek makes SaveLifePoint fail for that week start
	// (YYYY-MM-DD), for partial-write tests.
	failLifePointWeek string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		completions:       map[string]int{},
		lifePoints:        map[string]models.LifePoint{},
		linkedCompletions: map[string]int{},
		linkedLifePoints:  map[string]int{},
	}
}

func completionKey(habitID string, day time.Time, attemptID string) string {
	return habitID + "|" + utils.FormatDate(day) + "|" + attemptID
}

func lifePointKey(weekStart time.Time, attemptID string) string {
	return utils.FormatDate(weekStart) + "|" + attemptID
}

// complete records n completions of a habit on a day.
func (f *fakeStore) complete(habitID string, day time.Time, attemptID string, n int) {
	f.completions[completionKey(habitID, day, attemptID)] += n
}

func (f *fakeStore) GetAllHabits(asOf time.Time, includeDeleted bool) ([]models.Habit, error) {
	if includeDeleted {
		return f.habits, nil
	}
	var out []models.Habit
	for _, h := range f.habits {
		if h.DeletedFromDate == nil || asOf.Before(*h.DeletedFromDate) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCompletionCount(habitID string, date time.Time, attemptID string) (int, error) {
	return f.completions[completionKey(habitID, date, attemptID)], nil
}

func (f *fakeStore) GetDailyCompletionCounts(habitID string, weekStart time.Time, attemptID string) (map[string]int, error) {
	counts := map[string]int{}
	for i := 0; i < constants.DaysPerWeek; i++ {
		day := utils.AddDays(weekStart, i)
		if n := f.completions[completionKey(habitID, day, attemptID)]; n > 0 {
			counts[utils.FormatDate(day)] = n
		}
	}
	return counts, nil
}

func (f *fakeStore) GetWeeklyCompletionCount(habitID string, weekStart time.Time, attemptID string) (int, error) {
	counts, _ := f.GetDailyCompletionCounts(habitID, weekStart, attemptID)
	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

func (f *fakeStore) GetActiveAttempt() (*models.Attempt, error) {
	for i := range f.attempts {
		if f.attempts[i].IsActive {
			a := f.attempts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateAttempt(a models.Attempt) error {
	f.attempts = append(f.attempts, a)
	return nil
}

func (f *fakeStore) UpdateAttempt(a models.Attempt) error {
	for i := range f.attempts {
		if f.attempts[i].ID == a.ID {
			f.attempts[i] = a
			return nil
		}
	}
	return fmt.Errorf("attempt %s not found", a.ID)
}

func (f *fakeStore) GetAllAttempts() ([]models.Attempt, error) {
	return f.attempts, nil
}

func (f *fakeStore) DeleteAttempt(id string) error {
	for i := range f.attempts {
		if f.attempts[i].ID == id {
			f.attempts = append(f.attempts[:i], f.attempts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("attempt %s not found", id)
}

func (f *fakeStore) GetGameState() (*models.GameState, error) {
	if f.state == nil {
		return nil, nil
	}
	state := *f.state
	return &state, nil
}

func (f *fakeStore) SaveGameState(state models.GameState) error {
	if state.CurrentLives < 0 {
		state.CurrentLives = 0
	}
	f.state = &state
	return nil
}

func (f *fakeStore) SaveLifePoint(lp models.LifePoint) error {
	if f.failLifePointWeek == utils.FormatDate(lp.WeekStartDate) {
		return fmt.Errorf("simulated life point write failure")
	}
	key := lifePointKey(lp.WeekStartDate, lp.AttemptID)
	if existing, ok := f.lifePoints[key]; ok {
		// Upsert semantics: keep the original ID.
		lp.ID = existing.ID
	}
	f.lifePoints[key] = lp
	return nil
}

func (f *fakeStore) GetLifePointForWeek(weekStart time.Time, attemptID string) (*models.LifePoint, error) {
	if lp, ok := f.lifePoints[lifePointKey(weekStart, attemptID)]; ok {
		return &lp, nil
	}
	return nil, nil
}

func (f *fakeStore) GetLifePoints(attemptID string) ([]models.LifePoint, error) {
	var out []models.LifePoint
	for _, lp := range f.lifePoints {
		if lp.AttemptID == attemptID {
			out = append(out, lp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStartDate.Before(out[j].WeekStartDate)
	})
	return out, nil
}

func (f *fakeStore) GetEarliestOrphanDate() (*time.Time, error) {
	all := append(append([]time.Time{}, f.orphanCompletionDates...), f.orphanLifePointDates...)
	if len(all) == 0 {
		return nil, nil
	}
	earliest := all[0]
	for _, d := range all[1:] {
		if d.Before(earliest) {
			earliest = d
		}
	}
	return &earliest, nil
}

func (f *fakeStore) LinkOrphanCompletions(attemptID string) (int, error) {
	n := len(f.orphanCompletionDates)
	f.linkedCompletions[attemptID] += n
	f.orphanCompletionDates = nil
	return n, nil
}

func (f *fakeStore) LinkOrphanLifePoints(attemptID string) (int, error) {
	n := len(f.orphanLifePointDates)
	f.linkedLifePoints[attemptID] += n
	f.orphanLifePointDates = nil
	return n, nil
}

// date builds a UTC midnight time for test fixtures.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newTestEngine wires an engine to the fake store with a pinned clock.
func newTestEngine(f *fakeStore, now time.Time) *Engine {
	e := NewEngine(f, f, f)
	e.Now = func() time.Time { return now }
	return e
}

// startAttempt seeds an active attempt and matching game state.
func (f *fakeStore) startAttempt(id string, start time.Time, lives int) {
	f.attempts = append(f.attempts, models.Attempt{
		ID:            id,
		StartDate:     start,
		StartingLives: lives,
		IsActive:      true,
	})
	f.state = &models.GameState{CurrentLives: lives, UpdatedAt: start}
}
