package goal

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

const MetricMilestone = "milestone"

type Milestone struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Goal struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	MetricType string      `json:"metricType"`
	Milestones []Milestone `json:"milestones"`
}

// Progress is the percentage of completed milestones, 0 with none.
func (g Goal) Progress() int {
	if len(g.Milestones) == 0 {
		return 0
	}
	return int(math.Round(float64(g.CompletedCount()) / float64(len(g.Milestones)) * 100))
}

func (g Goal) CompletedCount() int {
	n := 0
	for _, m := range g.Milestones {
		if m.Completed {
			n++
		}
	}
	return n
}

// MilestonesFromText makes one open milestone per non-blank line.
func MilestonesFromText(text string) []Milestone {
	out := []Milestone{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, Milestone{Text: line})
		}
	}
	return out
}

func (g Goal) checkIndex(i int) error {
	if i < 0 || i >= len(g.Milestones) {
		return fmt.Errorf("milestone %d out of range: goal %q has %d", i, g.ID, len(g.Milestones))
	}
	return nil
}

// The methods below return an updated copy; the receiver's milestone slice
// is never written to.

func (g Goal) ToggleMilestone(i int) (Goal, error) {
	if err := g.checkIndex(i); err != nil {
		return g, err
	}
	ms := slices.Clone(g.Milestones)
	ms[i].Completed = !ms[i].Completed
	g.Milestones = ms
	return g, nil
}

func (g Goal) AddMilestone(text string) (Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return g, fmt.Errorf("milestone text is required")
	}
	g.Milestones = append(slices.Clone(g.Milestones), Milestone{Text: text})
	return g, nil
}

func (g Goal) UpdateMilestone(i int, text string) (Goal, error) {
	if err := g.checkIndex(i); err != nil {
		return g, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return g, fmt.Errorf("milestone text is required")
	}
	ms := slices.Clone(g.Milestones)
	ms[i].Text = text
	g.Milestones = ms
	return g, nil
}

func (g Goal) DeleteMilestone(i int) (Goal, error) {
	if err := g.checkIndex(i); err != nil {
		return g, err
	}
	g.Milestones = slices.Delete(slices.Clone(g.Milestones), i, i+1)
	return g, nil
}
