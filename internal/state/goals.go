package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/brk3/lifemanager/pkg/goal"
)

type AddGoal struct {
	ID    string
	Title string
	// MilestonesText holds one milestone per line.
	MilestonesText string
}

func (AddGoal) String() string { return "add goal" }

func (a AddGoal) apply(s State) (State, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return s, fmt.Errorf("goal title is required")
	}
	if a.ID == "" {
		return s, fmt.Errorf("goal id is required")
	}
	if _, dup := s.Goal(a.ID); dup {
		return s, fmt.Errorf("goal %q already exists", a.ID)
	}
	g := goal.Goal{
		ID:         a.ID,
		Title:      title,
		MetricType: goal.MetricMilestone,
		Milestones: goal.MilestonesFromText(a.MilestonesText),
	}
	s.Goals = append(slices.Clone(s.Goals), g)
	return s, nil
}

type UpdateGoal struct {
	ID    string
	Title string
}

func (UpdateGoal) String() string { return "update goal" }

func (a UpdateGoal) apply(s State) (State, error) {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return s, fmt.Errorf("goal title is required")
	}
	return editGoal(s, a.ID, func(g goal.Goal) (goal.Goal, error) {
		g.Title = title
		return g, nil
	})
}

type DeleteGoal struct {
	ID string
}

func (DeleteGoal) String() string { return "delete goal" }

func (a DeleteGoal) apply(s State) (State, error) {
	i := slices.IndexFunc(s.Goals, func(g goal.Goal) bool { return g.ID == a.ID })
	if i < 0 {
		return s, fmt.Errorf("goal %q: %w", a.ID, ErrNotFound)
	}
	s.Goals = removeAt(s.Goals, i)
	return s, nil
}

type ToggleMilestone struct {
	GoalID string
	Index  int
}

func (ToggleMilestone) String() string { return "toggle milestone" }

func (a ToggleMilestone) apply(s State) (State, error) {
	return editGoal(s, a.GoalID, func(g goal.Goal) (goal.Goal, error) {
		return g.ToggleMilestone(a.Index)
	})
}

type AddMilestone struct {
	GoalID string
	Text   string
}

func (AddMilestone) String() string { return "add milestone" }

func (a AddMilestone) apply(s State) (State, error) {
	return editGoal(s, a.GoalID, func(g goal.Goal) (goal.Goal, error) {
		return g.AddMilestone(a.Text)
	})
}

type UpdateMilestone struct {
	GoalID string
	Index  int
	Text   string
}

func (UpdateMilestone) String() string { return "update milestone" }

func (a UpdateMilestone) apply(s State) (State, error) {
	return editGoal(s, a.GoalID, func(g goal.Goal) (goal.Goal, error) {
		return g.UpdateMilestone(a.Index, a.Text)
	})
}

type DeleteMilestone struct {
	GoalID string
	Index  int
}

func (DeleteMilestone) String() string { return "delete milestone" }

func (a DeleteMilestone) apply(s State) (State, error) {
	return editGoal(s, a.GoalID, func(g goal.Goal) (goal.Goal, error) {
		return g.DeleteMilestone(a.Index)
	})
}

func editGoal(s State, id string, fn func(goal.Goal) (goal.Goal, error)) (State, error) {
	i := slices.IndexFunc(s.Goals, func(g goal.Goal) bool { return g.ID == id })
	if i < 0 {
		return s, fmt.Errorf("goal %q: %w", id, ErrNotFound)
	}
	g, err := fn(s.Goals[i])
	if err != nil {
		return s, err
	}
	s.Goals = replaceAt(s.Goals, i, g)
	return s, nil
}
