package idea

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/brk3/lifemanager/pkg/habit"
)

type Status string

const (
	StatusIdea      Status = "idea"
	StatusExploring Status = "exploring"
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusDone      Status = "done"
)

var Statuses = []Status{StatusIdea, StatusExploring, StatusPlanning, StatusActive, StatusDone}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Statuses, st) {
		return "", fmt.Errorf("unknown idea status %q", s)
	}
	return st, nil
}

type Point struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type Idea struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Category  habit.Category `json:"category"`
	CreatedAt time.Time      `json:"createdAt"`
	Status    Status         `json:"status"`
	Notes     string         `json:"notes"`
	Points    []Point        `json:"points"`
	NextStep  string         `json:"nextStep"`
}

// PointsDone counts finished points.
func (i Idea) PointsDone() int {
	n := 0
	for _, p := range i.Points {
		if p.Done {
			n++
		}
	}
	return n
}

func (i Idea) AddPoint(id, text string) (Idea, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return i, fmt.Errorf("point text is required")
	}
	i.Points = append(slices.Clone(i.Points), Point{ID: id, Text: text})
	return i, nil
}

func (i Idea) TogglePoint(id string) (Idea, error) {
	idx := slices.IndexFunc(i.Points, func(p Point) bool { return p.ID == id })
	if idx < 0 {
		return i, fmt.Errorf("point %q not found", id)
	}
	ps := slices.Clone(i.Points)
	ps[idx].Done = !ps[idx].Done
	i.Points = ps
	return i, nil
}

func (i Idea) DeletePoint(id string) (Idea, error) {
	idx := slices.IndexFunc(i.Points, func(p Point) bool { return p.ID == id })
	if idx < 0 {
		return i, fmt.Errorf("point %q not found", id)
	}
	i.Points = slices.Delete(slices.Clone(i.Points), idx, idx+1)
	return i, nil
}
