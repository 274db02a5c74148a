package state

import (
	"fmt"

	"github.com/brk3/lifemanager/pkg/goal"
	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/idea"
	"github.com/brk3/lifemanager/pkg/task"
)

// Patch replaces each slice that is non-nil and leaves the others as they
// are. Backup imports use it. A patch carrying an invalid habit is rejected
// whole.
type Patch struct {
	Habits    []habit.Habit
	Tasks     []task.Task
	Goals     []goal.Goal
	Ideas     []idea.Idea
	DailyLogs map[string]habit.DailyLog
	Scores    map[string]habit.Score
}

func (Patch) String() string { return "import" }

func (a Patch) apply(s State) (State, error) {
	for _, h := range a.Habits {
		if err := h.Validate(); err != nil {
			return s, fmt.Errorf("habit %q: %w", h.ID, err)
		}
	}
	if a.Habits != nil {
		s.Habits = a.Habits
	}
	if a.Tasks != nil {
		s.Tasks = a.Tasks
	}
	if a.Goals != nil {
		s.Goals = a.Goals
	}
	if a.Ideas != nil {
		s.Ideas = a.Ideas
	}
	if a.DailyLogs != nil {
		s.DailyLogs = a.DailyLogs
	}
	if a.Scores != nil {
		s.Scores = a.Scores
	}
	return s, nil
}

// Replace swaps the whole aggregate for another one. Missing slices become
// empty rather than keeping their local values.
type Replace struct {
	State State
}

func (Replace) String() string { return "replace" }

func (a Replace) apply(State) (State, error) {
	return Patch{
		Habits:    a.State.Habits,
		Tasks:     a.State.Tasks,
		Goals:     a.State.Goals,
		Ideas:     a.State.Ideas,
		DailyLogs: a.State.DailyLogs,
		Scores:    a.State.Scores,
	}.apply(Empty())
}
