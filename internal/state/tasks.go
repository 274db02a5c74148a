package state

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/brk3/lifemanager/pkg/period"
	"github.com/brk3/lifemanager/pkg/task"
)

type AddTask struct {
	ID        string
	Title     string
	Term      task.Term
	Recurring period.Recurrence
	DueDate   string
	Now       time.Time
}

func (AddTask) String() string { return "add task" }

func (a AddTask) apply(s State) (State, error) {
	t := task.Task{
		ID:          a.ID,
		Title:       strings.TrimSpace(a.Title),
		Term:        a.Term,
		Status:      task.Pending,
		CreatedAt:   a.Now,
		DueDate:     a.DueDate,
		Recurring:   a.Recurring,
		Completions: map[string]time.Time{},
	}
	if t.Term == "" || t.IsRecurring() {
		t.Term = task.TermToday
	}
	if t.ID == "" {
		return s, fmt.Errorf("task id is required")
	}
	if _, dup := s.Task(t.ID); dup {
		return s, fmt.Errorf("task %q already exists", t.ID)
	}
	if err := t.Validate(); err != nil {
		return s, err
	}
	s.Tasks = append(slices.Clone(s.Tasks), t)
	return s, nil
}

type UpdateTask struct {
	ID        string
	Title     *string
	Term      *task.Term
	Recurring *period.Recurrence
	DueDate   *string
}

func (UpdateTask) String() string { return "update task" }

func (a UpdateTask) apply(s State) (State, error) {
	i := slices.IndexFunc(s.Tasks, func(t task.Task) bool { return t.ID == a.ID })
	if i < 0 {
		return s, fmt.Errorf("task %q: %w", a.ID, ErrNotFound)
	}
	t := s.Tasks[i]
	if a.Title != nil {
		t.Title = strings.TrimSpace(*a.Title)
	}
	if a.Term != nil {
		t.Term = *a.Term
	}
	if a.Recurring != nil {
		t.Recurring = *a.Recurring
	}
	if a.DueDate != nil {
		t.DueDate = *a.DueDate
	}
	if err := t.Validate(); err != nil {
		return s, err
	}
	s.Tasks = replaceAt(s.Tasks, i, t)
	return s, nil
}

// CompleteTask toggles a task's completion as of Now.
type CompleteTask struct {
	ID  string
	Now time.Time
}

func (CompleteTask) String() string { return "complete task" }

func (a CompleteTask) apply(s State) (State, error) {
	i := slices.IndexFunc(s.Tasks, func(t task.Task) bool { return t.ID == a.ID })
	if i < 0 {
		return s, fmt.Errorf("task %q: %w", a.ID, ErrNotFound)
	}
	s.Tasks = replaceAt(s.Tasks, i, s.Tasks[i].Complete(a.Now))
	return s, nil
}

type DeleteTask struct {
	ID string
}

func (DeleteTask) String() string { return "delete task" }

func (a DeleteTask) apply(s State) (State, error) {
	i := slices.IndexFunc(s.Tasks, func(t task.Task) bool { return t.ID == a.ID })
	if i < 0 {
		return s, fmt.Errorf("task %q: %w", a.ID, ErrNotFound)
	}
	s.Tasks = removeAt(s.Tasks, i)
	return s, nil
}
