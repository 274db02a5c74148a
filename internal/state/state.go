// Package state holds the single aggregate of everything the user tracks and
// the reducer that applies every mutation to it.
package state

import (
	"errors"
	"maps"
	"slices"

	"github.com/brk3/lifemanager/pkg/goal"
	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/idea"
	"github.com/brk3/lifemanager/pkg/task"
)

var ErrNotFound = errors.New("not found")

// State is treated as immutable: reducers build new slices and maps for
// anything they change and share the rest.
type State struct {
	Habits    []habit.Habit             `json:"habits"`
	Tasks     []task.Task               `json:"tasks"`
	Goals     []goal.Goal               `json:"goals"`
	Ideas     []idea.Idea               `json:"ideas"`
	DailyLogs map[string]habit.DailyLog `json:"dailyLogs"`
	Scores    map[string]habit.Score    `json:"scores"`
}

// Empty has every slice and map allocated.
func Empty() State {
	return State{
		Habits:    []habit.Habit{},
		Tasks:     []task.Task{},
		Goals:     []goal.Goal{},
		Ideas:     []idea.Idea{},
		DailyLogs: map[string]habit.DailyLog{},
		Scores:    map[string]habit.Score{},
	}
}

// Clone deep-copies s so the result shares no mutable memory with it.
func (s State) Clone() State {
	out := State{
		Habits:    slices.Clone(s.Habits),
		Tasks:     make([]task.Task, len(s.Tasks)),
		Goals:     make([]goal.Goal, len(s.Goals)),
		Ideas:     make([]idea.Idea, len(s.Ideas)),
		DailyLogs: make(map[string]habit.DailyLog, len(s.DailyLogs)),
		Scores:    maps.Clone(s.Scores),
	}
	for i, t := range s.Tasks {
		t.Completions = maps.Clone(t.Completions)
		out.Tasks[i] = t
	}
	for i, g := range s.Goals {
		g.Milestones = slices.Clone(g.Milestones)
		out.Goals[i] = g
	}
	for i, id := range s.Ideas {
		id.Points = slices.Clone(id.Points)
		out.Ideas[i] = id
	}
	for k, dl := range s.DailyLogs {
		dl.HabitLogs = maps.Clone(dl.HabitLogs)
		out.DailyLogs[k] = dl
	}
	if out.Habits == nil {
		out.Habits = []habit.Habit{}
	}
	if out.Scores == nil {
		out.Scores = map[string]habit.Score{}
	}
	return out
}

func (s State) Habit(id string) (habit.Habit, bool) {
	i := slices.IndexFunc(s.Habits, func(h habit.Habit) bool { return h.ID == id })
	if i < 0 {
		return habit.Habit{}, false
	}
	return s.Habits[i], true
}

func (s State) Task(id string) (task.Task, bool) {
	i := slices.IndexFunc(s.Tasks, func(t task.Task) bool { return t.ID == id })
	if i < 0 {
		return task.Task{}, false
	}
	return s.Tasks[i], true
}

func (s State) Goal(id string) (goal.Goal, bool) {
	i := slices.IndexFunc(s.Goals, func(g goal.Goal) bool { return g.ID == id })
	if i < 0 {
		return goal.Goal{}, false
	}
	return s.Goals[i], true
}

func (s State) Idea(id string) (idea.Idea, bool) {
	i := slices.IndexFunc(s.Ideas, func(x idea.Idea) bool { return x.ID == id })
	if i < 0 {
		return idea.Idea{}, false
	}
	return s.Ideas[i], true
}

// DayLog returns the log for dayKey, or a zero log when nothing has been
// written for that day yet.
func (s State) DayLog(dayKey string) habit.DailyLog {
	if dl, ok := s.DailyLogs[dayKey]; ok {
		return dl
	}
	return habit.DailyLog{HabitLogs: map[string]habit.Log{}}
}

// ApplicableHabits lists the habits that count on dayKey.
func (s State) ApplicableHabits(dayKey string) []habit.Habit {
	var out []habit.Habit
	for _, h := range s.Habits {
		if h.AppliesTo(dayKey) {
			out = append(out, h)
		}
	}
	return out
}

// TasksDueBy lists recurring tasks and pending one-off tasks due by today.
func (s State) TasksDueBy(today string) []task.Task {
	var out []task.Task
	for _, t := range s.Tasks {
		if t.DueBy(today) {
			out = append(out, t)
		}
	}
	return out
}

// TasksCompletedOn lists tasks whose completion was recorded on dayKey.
func (s State) TasksCompletedOn(dayKey string) []task.Task {
	var out []task.Task
	for _, t := range s.Tasks {
		if t.CompletedOn(dayKey) {
			out = append(out, t)
		}
	}
	return out
}

// replaceAt returns a copy of xs with xs[i] set to v.
func replaceAt[T any](xs []T, i int, v T) []T {
	out := slices.Clone(xs)
	out[i] = v
	return out
}

func removeAt[T any](xs []T, i int) []T {
	return slices.Delete(slices.Clone(xs), i, i+1)
}
