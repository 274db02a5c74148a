// Package nudge sends a reminder when today is going badly: the score is
// under a threshold or recurring tasks are still open for their period.
package nudge

import (
	"time"

	"github.com/brk3/lifemanager/internal/logger"
	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/period"
)

// Querier exposes the current state. *state.Store satisfies it.
type Querier interface {
	Snapshot() state.State
}

type Notifier interface {
	SendNudge(r Reminder) error
}

// Reminder is what a nudge reports about one day.
type Reminder struct {
	Day           string
	Score         habit.Score
	Threshold     int
	PendingHabits []string
	OpenTasks     []string
}

// Due reports whether the reminder is worth sending.
func (r Reminder) Due() bool {
	return r.Score.Total < r.Threshold || len(r.OpenTasks) > 0
}

// Check builds the reminder for the day containing now.
func Check(q Querier, now time.Time, threshold int) Reminder {
	s := q.Snapshot()
	day := period.DayKey(now)
	logs := s.DayLog(day).HabitLogs

	r := Reminder{
		Day:       day,
		Score:     habit.ComputeDailyScore(logs, s.Habits, day),
		Threshold: threshold,
	}
	for _, h := range s.ApplicableHabits(day) {
		if !logs[h.ID].Completed {
			r.PendingHabits = append(r.PendingHabits, h.Name)
		}
	}
	for _, t := range s.Tasks {
		if t.IsRecurring() && !t.IsCompleted(now) {
			r.OpenTasks = append(r.OpenTasks, t.Title)
		}
	}
	return r
}

// Nudge checks today and notifies if needed. It reports whether a reminder
// was sent.
func Nudge(q Querier, n Notifier, now time.Time, threshold int) (bool, error) {
	r := Check(q, now, threshold)
	if !r.Due() {
		logger.Info("Nothing to nudge about", "day", r.Day, "score", r.Score.Total)
		return false, nil
	}
	if err := n.SendNudge(r); err != nil {
		logger.Error("Failed to send nudge", "day", r.Day, "error", err)
		return false, err
	}
	logger.Info("Nudge sent", "day", r.Day, "score", r.Score.Total, "open_tasks", len(r.OpenTasks))
	return true, nil
}
