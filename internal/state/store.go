package state

import (
	"sync"

	"github.com/brk3/lifemanager/internal/logger"
	"github.com/brk3/lifemanager/internal/storage"
	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/idea"
	"github.com/brk3/lifemanager/pkg/task"
)

// Local storage keys, one per slice of the aggregate.
const (
	KeyHabits    = "lm_habits"
	KeyTasks     = "lm_tasks"
	KeyGoals     = "lm_goals"
	KeyIdeas     = "lm_ideas"
	KeyDailyLogs = "lm_dailyLogs"
	KeyScores    = "lm_scores"
)

// Load reads the aggregate from kv. Anything missing or unreadable falls
// back to its default: the starter habits and goals, empty otherwise.
func Load(kv storage.Store) State {
	s := State{
		Habits:    storage.Get(kv, KeyHabits, DefaultHabits()),
		Tasks:     storage.Get(kv, KeyTasks, []task.Task{}),
		Goals:     storage.Get(kv, KeyGoals, DefaultGoals()),
		Ideas:     storage.Get(kv, KeyIdeas, []idea.Idea{}),
		DailyLogs: storage.Get(kv, KeyDailyLogs, map[string]habit.DailyLog{}),
		Scores:    storage.Get(kv, KeyScores, map[string]habit.Score{}),
	}
	return s
}

// Save writes every slice of s to kv. Write failures are logged only.
func Save(kv storage.Store, s State) {
	storage.Set(kv, KeyHabits, s.Habits)
	storage.Set(kv, KeyTasks, s.Tasks)
	storage.Set(kv, KeyGoals, s.Goals)
	storage.Set(kv, KeyIdeas, s.Ideas)
	storage.Set(kv, KeyDailyLogs, s.DailyLogs)
	storage.Set(kv, KeyScores, s.Scores)
}

// Store owns the in-memory aggregate. Dispatches are serialised and each one
// swaps in a whole new State, so a Snapshot never shows a half-applied
// mutation. The in-memory state stays authoritative if persisting fails.
type Store struct {
	mu  sync.Mutex
	cur State
	kv  storage.Store
}

func NewStore(kv storage.Store, initial State) *Store {
	return &Store{cur: initial, kv: kv}
}

// Open loads the aggregate from kv and wraps it in a Store.
func Open(kv storage.Store) *Store {
	return NewStore(kv, Load(kv))
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Dispatch reduces a against the current state and persists the result.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.cur, a)
	if err != nil {
		logger.Debug("Action rejected", "action", a.String(), "error", err)
		return s.cur, err
	}
	s.cur = next
	logger.Debug("Action applied", "action", a.String())

	if s.kv != nil {
		Save(s.kv, next)
	}
	return next, nil
}
