package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/period"
)

// Action is one mutation of the aggregate.
type Action interface {
	String() string
	apply(State) (State, error)
}

// Reduce applies a to s and returns the new state. s itself is left as it
// was; on error the returned state is s.
func Reduce(s State, a Action) (State, error) {
	next, err := a.apply(s)
	if err != nil {
		return s, fmt.Errorf("%s: %w", a.String(), err)
	}
	return next, nil
}

// putDayLog stores dl under dayKey. When rescore is set and the day has
// habit logs, the day's cached score is recomputed in the same step.
func putDayLog(s State, dayKey string, dl habit.DailyLog, rescore bool) State {
	logs := maps.Clone(s.DailyLogs)
	if logs == nil {
		logs = map[string]habit.DailyLog{}
	}
	logs[dayKey] = dl
	s.DailyLogs = logs
	if rescore && len(dl.HabitLogs) > 0 {
		s.Scores = withScore(s.Scores, dayKey, habit.ComputeDailyScore(dl.HabitLogs, s.Habits, dayKey))
	}
	return s
}

func withScore(scores map[string]habit.Score, dayKey string, sc habit.Score) map[string]habit.Score {
	out := maps.Clone(scores)
	if out == nil {
		out = map[string]habit.Score{}
	}
	out[dayKey] = sc
	return out
}

func checkDay(dayKey string) error {
	if !period.ValidDayKey(dayKey) {
		return fmt.Errorf("bad day %q: want YYYY-MM-DD", dayKey)
	}
	return nil
}

type AddHabit struct {
	ID       string
	Name     string
	Type     habit.Type
	Target   int
	Category habit.Category
	Link     string
	// Today becomes the habit's creation day.
	Today string
}

func (AddHabit) String() string { return "add habit" }

func (a AddHabit) apply(s State) (State, error) {
	h := habit.Habit{
		ID:        a.ID,
		Name:      strings.TrimSpace(a.Name),
		Type:      a.Type,
		Target:    a.Target,
		Category:  a.Category,
		CreatedAt: a.Today,
		Link:      strings.TrimSpace(a.Link),
	}
	if h.Type == "" {
		h.Type = habit.Binary
	}
	if h.Target == 0 {
		h.Target = 1
	}
	if h.Category == "" {
		h.Category = habit.Productivity
	}
	if h.ID == "" {
		return s, fmt.Errorf("habit id is required")
	}
	if _, dup := s.Habit(h.ID); dup {
		return s, fmt.Errorf("habit %q already exists", h.ID)
	}
	if err := checkDay(h.CreatedAt); err != nil {
		return s, err
	}
	if err := h.Validate(); err != nil {
		return s, err
	}
	s.Habits = append(slices.Clone(s.Habits), h)
	return s, nil
}

// UpdateHabit patches the non-nil fields.
type UpdateHabit struct {
	ID       string
	Name     *string
	Type     *habit.Type
	Target   *int
	Category *habit.Category
	Link     *string
}

func (UpdateHabit) String() string { return "update habit" }

func (a UpdateHabit) apply(s State) (State, error) {
	i := slices.IndexFunc(s.Habits, func(h habit.Habit) bool { return h.ID == a.ID })
	if i < 0 {
		return s, fmt.Errorf("habit %q: %w", a.ID, ErrNotFound)
	}
	h := s.Habits[i]
	if a.Name != nil {
		h.Name = strings.TrimSpace(*a.Name)
	}
	if a.Type != nil {
		h.Type = *a.Type
	}
	if a.Target != nil {
		h.Target = *a.Target
	}
	if a.Category != nil {
		h.Category = *a.Category
	}
	if a.Link != nil {
		h.Link = strings.TrimSpace(*a.Link)
	}
	if err := h.Validate(); err != nil {
		return s, err
	}
	s.Habits = replaceAt(s.Habits, i, h)
	return s, nil
}

// ToggleHabit advances one habit's log on DayKey, which need not be today.
// Value, when set, is taken as the new count.
type ToggleHabit struct {
	HabitID string
	DayKey  string
	Value   *int
}

func (ToggleHabit) String() string { return "toggle habit" }

func (a ToggleHabit) apply(s State) (State, error) {
	if err := checkDay(a.DayKey); err != nil {
		return s, err
	}
	h, ok := s.Habit(a.HabitID)
	if !ok {
		return s, fmt.Errorf("habit %q: %w", a.HabitID, ErrNotFound)
	}
	if a.Value != nil && *a.Value < 0 {
		return s, fmt.Errorf("bad value %d: must not be negative", *a.Value)
	}

	dl := s.DayLog(a.DayKey)
	logs := maps.Clone(dl.HabitLogs)
	if logs == nil {
		logs = map[string]habit.Log{}
	}
	logs[h.ID] = h.Toggle(logs[h.ID], a.Value)
	dl.HabitLogs = logs
	return putDayLog(s, a.DayKey, dl, true), nil
}

// DeleteHabit drops the habit and purges its log from every day. Cached
// scores are only recomputed for days that still have habit logs afterwards.
type DeleteHabit struct {
	ID string
}

func (DeleteHabit) String() string { return "delete habit" }

func (a DeleteHabit) apply(s State) (State, error) {
	i := slices.IndexFunc(s.Habits, func(h habit.Habit) bool { return h.ID == a.ID })
	if i < 0 {
		return s, fmt.Errorf("habit %q: %w", a.ID, ErrNotFound)
	}
	s.Habits = removeAt(s.Habits, i)

	logs := make(map[string]habit.DailyLog, len(s.DailyLogs))
	var scores map[string]habit.Score
	for day, dl := range s.DailyLogs {
		if _, ok := dl.HabitLogs[a.ID]; ok {
			hl := maps.Clone(dl.HabitLogs)
			delete(hl, a.ID)
			dl.HabitLogs = hl
			if len(hl) > 0 {
				if scores == nil {
					scores = maps.Clone(s.Scores)
				}
				scores[day] = habit.ComputeDailyScore(hl, s.Habits, day)
			}
		}
		logs[day] = dl
	}
	s.DailyLogs = logs
	if scores != nil {
		s.Scores = scores
	}
	return s, nil
}

// RemoveHabitFromDay drops one habit's log for a single day only.
type RemoveHabitFromDay struct {
	HabitID string
	DayKey  string
}

func (RemoveHabitFromDay) String() string { return "remove habit from day" }

func (a RemoveHabitFromDay) apply(s State) (State, error) {
	if err := checkDay(a.DayKey); err != nil {
		return s, err
	}
	dl := s.DayLog(a.DayKey)
	hl := maps.Clone(dl.HabitLogs)
	if hl == nil {
		hl = map[string]habit.Log{}
	}
	delete(hl, a.HabitID)
	dl.HabitLogs = hl
	return putDayLog(s, a.DayKey, dl, true), nil
}

// RescoreDay refreshes the cached score of a day that has habit logs against
// the current roster. Days without logs are left alone.
type RescoreDay struct {
	DayKey string
}

func (RescoreDay) String() string { return "rescore day" }

func (a RescoreDay) apply(s State) (State, error) {
	if err := checkDay(a.DayKey); err != nil {
		return s, err
	}
	dl, ok := s.DailyLogs[a.DayKey]
	if !ok || len(dl.HabitLogs) == 0 {
		return s, nil
	}
	sc := habit.ComputeDailyScore(dl.HabitLogs, s.Habits, a.DayKey)
	if cur, ok := s.Scores[a.DayKey]; ok && cur == sc {
		return s, nil
	}
	s.Scores = withScore(s.Scores, a.DayKey, sc)
	return s, nil
}

type SetSleep struct {
	DayKey   string
	BedTime  *string
	WakeTime *string
}

func (SetSleep) String() string { return "set sleep" }

func (a SetSleep) apply(s State) (State, error) {
	if err := checkDay(a.DayKey); err != nil {
		return s, err
	}
	dl := s.DayLog(a.DayKey)
	sl := dl.Sleep
	if a.BedTime != nil {
		sl.BedTime = *a.BedTime
	}
	if a.WakeTime != nil {
		sl.WakeTime = *a.WakeTime
	}
	hours, err := habit.SleepHours(sl.BedTime, sl.WakeTime)
	if err != nil {
		return s, err
	}
	sl.HoursSlept = hours
	dl.Sleep = sl
	return putDayLog(s, a.DayKey, dl, false), nil
}

type SetScreenTime struct {
	DayKey string
	Hours  float64
}

func (SetScreenTime) String() string { return "set screen time" }

func (a SetScreenTime) apply(s State) (State, error) {
	if err := checkDay(a.DayKey); err != nil {
		return s, err
	}
	if a.Hours < 0 || a.Hours > 24 {
		return s, fmt.Errorf("bad screen time %v: must be between 0 and 24 hours", a.Hours)
	}
	dl := s.DayLog(a.DayKey)
	dl.ScreenTime = a.Hours
	return putDayLog(s, a.DayKey, dl, false), nil
}

type SetFactLearned struct {
	DayKey string
	Fact   string
}

func (SetFactLearned) String() string { return "set fact learned" }

func (a SetFactLearned) apply(s State) (State, error) {
	if err := checkDay(a.DayKey); err != nil {
		return s, err
	}
	dl := s.DayLog(a.DayKey)
	dl.FactLearned = a.Fact
	return putDayLog(s, a.DayKey, dl, false), nil
}
