// Package task models one-off and recurring tasks. A recurring task is never
// done outright; it is done for a period bucket derived from its recurrence.
package task

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/brk3/lifemanager/pkg/period"
)

type Status string

const (
	Pending Status = "pending"
	Done    Status = "done"
)

type Term string

const (
	TermToday     Term = "Today"
	TermThisWeek  Term = "This Week"
	TermThisMonth Term = "This Month"
	TermLongTerm  Term = "Long Term"
)

var Terms = []Term{TermToday, TermThisWeek, TermThisMonth, TermLongTerm}

// ParseTerm matches a term case-insensitively. Empty yields TermToday.
func ParseTerm(s string) (Term, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TermToday, nil
	}
	for _, t := range Terms {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown term %q", s)
}

type Task struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Term        Term              `json:"term,omitempty"`
	Status      Status            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
	DueDate     string            `json:"dueDate,omitempty"`
	Recurring   period.Recurrence `json:"recurring,omitempty"`
	// Completions maps a period key to when the task was completed for
	// that period. Only recurring tasks use it.
	Completions map[string]time.Time `json:"completions"`
}

func (t Task) IsRecurring() bool {
	return t.Recurring != period.None
}

// Complete toggles the task's done state as of now and returns the updated
// copy. Recurring tasks toggle the bucket for now's period; one-off tasks
// flip between pending and done.
func (t Task) Complete(now time.Time) Task {
	if key, ok := period.Key(t.Recurring, now); ok {
		c := maps.Clone(t.Completions)
		if c == nil {
			c = map[string]time.Time{}
		}
		if _, done := c[key]; done {
			delete(c, key)
		} else {
			c[key] = now
		}
		t.Completions = c
		return t
	}

	if t.Status == Done {
		t.Status = Pending
		t.CompletedAt = nil
	} else {
		at := now
		t.Status = Done
		t.CompletedAt = &at
	}
	return t
}

// IsCompleted reports whether the task is done as of now.
func (t Task) IsCompleted(now time.Time) bool {
	if key, ok := period.Key(t.Recurring, now); ok {
		_, done := t.Completions[key]
		return done
	}
	return t.Status == Done
}

// IsCompletedForDate recomputes the period key for dayKey rather than for
// the current time, so a past week's bucket is checked against that week.
func (t Task) IsCompletedForDate(dayKey string) (bool, error) {
	if !t.IsRecurring() {
		return t.Status == Done, nil
	}
	d, err := period.ParseDayKey(dayKey)
	if err != nil {
		return false, err
	}
	return t.IsCompleted(d), nil
}

// CompletedOn reports whether the completion that satisfies dayKey's bucket
// was itself recorded on dayKey.
func (t Task) CompletedOn(dayKey string) bool {
	if t.IsRecurring() {
		d, err := period.ParseDayKey(dayKey)
		if err != nil {
			return false
		}
		key, _ := period.Key(t.Recurring, d)
		at, ok := t.Completions[key]
		return ok && period.DayKey(at) == dayKey
	}
	return t.Status == Done && t.CompletedAt != nil && period.DayKey(*t.CompletedAt) == dayKey
}

// DueBy reports whether the task belongs on the list for today. Recurring
// tasks always do; one-off tasks do while pending and not due later.
func (t Task) DueBy(today string) bool {
	if t.IsRecurring() {
		return true
	}
	return t.Status != Done && (t.DueDate == "" || t.DueDate <= today)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	if !t.Recurring.Valid() {
		return fmt.Errorf("bad recurrence %q", t.Recurring)
	}
	if t.DueDate != "" && !period.ValidDayKey(t.DueDate) {
		return fmt.Errorf("bad due date %q: want YYYY-MM-DD", t.DueDate)
	}
	return nil
}
