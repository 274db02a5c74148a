package state

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/idea"
)

type AddIdea struct {
	ID       string
	Text     string
	Category habit.Category
	Now      time.Time
}

func (AddIdea) String() string { return "add idea" }

func (a AddIdea) apply(s State) (State, error) {
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return s, fmt.Errorf("idea text is required")
	}
	if a.ID == "" {
		return s, fmt.Errorf("idea id is required")
	}
	if _, dup := s.Idea(a.ID); dup {
		return s, fmt.Errorf("idea %q already exists", a.ID)
	}
	cat := a.Category
	if cat == "" {
		cat = habit.Productivity
	}
	if !cat.Valid() {
		return s, fmt.Errorf("unknown category %q", cat)
	}
	s.Ideas = append(slices.Clone(s.Ideas), idea.Idea{
		ID:        a.ID,
		Text:      text,
		Category:  cat,
		CreatedAt: a.Now,
		Status:    idea.StatusIdea,
		Points:    []idea.Point{},
	})
	return s, nil
}

// UpdateIdea patches the non-nil fields.
type UpdateIdea struct {
	ID       string
	Text     *string
	Category *habit.Category
	Status   *idea.Status
	Notes    *string
	NextStep *string
}

func (UpdateIdea) String() string { return "update idea" }

func (a UpdateIdea) apply(s State) (State, error) {
	return editIdea(s, a.ID, func(i idea.Idea) (idea.Idea, error) {
		if a.Text != nil {
			t := strings.TrimSpace(*a.Text)
			if t == "" {
				return i, fmt.Errorf("idea text is required")
			}
			i.Text = t
		}
		if a.Category != nil {
			if !a.Category.Valid() {
				return i, fmt.Errorf("unknown category %q", *a.Category)
			}
			i.Category = *a.Category
		}
		if a.Status != nil {
			if !slices.Contains(idea.Statuses, *a.Status) {
				return i, fmt.Errorf("unknown idea status %q", *a.Status)
			}
			i.Status = *a.Status
		}
		if a.Notes != nil {
			i.Notes = *a.Notes
		}
		if a.NextStep != nil {
			i.NextStep = *a.NextStep
		}
		return i, nil
	})
}

type DeleteIdea struct {
	ID string
}

func (DeleteIdea) String() string { return "delete idea" }

func (a DeleteIdea) apply(s State) (State, error) {
	i := slices.IndexFunc(s.Ideas, func(x idea.Idea) bool { return x.ID == a.ID })
	if i < 0 {
		return s, fmt.Errorf("idea %q: %w", a.ID, ErrNotFound)
	}
	s.Ideas = removeAt(s.Ideas, i)
	return s, nil
}

type AddIdeaPoint struct {
	IdeaID  string
	PointID string
	Text    string
}

func (AddIdeaPoint) String() string { return "add idea point" }

func (a AddIdeaPoint) apply(s State) (State, error) {
	return editIdea(s, a.IdeaID, func(i idea.Idea) (idea.Idea, error) {
		return i.AddPoint(a.PointID, a.Text)
	})
}

type ToggleIdeaPoint struct {
	IdeaID  string
	PointID string
}

func (ToggleIdeaPoint) String() string { return "toggle idea point" }

func (a ToggleIdeaPoint) apply(s State) (State, error) {
	return editIdea(s, a.IdeaID, func(i idea.Idea) (idea.Idea, error) {
		return i.TogglePoint(a.PointID)
	})
}

type DeleteIdeaPoint struct {
	IdeaID  string
	PointID string
}

func (DeleteIdeaPoint) String() string { return "delete idea point" }

func (a DeleteIdeaPoint) apply(s State) (State, error) {
	return editIdea(s, a.IdeaID, func(i idea.Idea) (idea.Idea, error) {
		return i.DeletePoint(a.PointID)
	})
}

func editIdea(s State, id string, fn func(idea.Idea) (idea.Idea, error)) (State, error) {
	i := slices.IndexFunc(s.Ideas, func(x idea.Idea) bool { return x.ID == id })
	if i < 0 {
		return s, fmt.Errorf("idea %q: %w", id, ErrNotFound)
	}
	x, err := fn(s.Ideas[i])
	if err != nil {
		return s, err
	}
	s.Ideas = replaceAt(s.Ideas, i, x)
	return s, nil
}
