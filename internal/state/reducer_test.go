package state

import (
	"testing"
	"time"

	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/idea"
	"github.com/brk3/lifemanager/pkg/period"
	"github.com/brk3/lifemanager/pkg/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func strp(s string) *string { return &s }

func seeded(t *testing.T) State {
	t.Helper()
	s := Empty()
	var err error
	for _, a := range []Action{
		AddHabit{ID: "bin", Name: "Meditate", Type: habit.Binary, Today: "2020-01-01"},
		AddHabit{ID: "cnt", Name: "Eat clean", Type: habit.Count, Target: 4, Today: "2020-01-01"},
	} {
		s, err = Reduce(s, a)
		require.NoError(t, err)
	}
	return s
}

func mustReduce(t *testing.T, s State, actions ...Action) State {
	t.Helper()
	var err error
	for _, a := range actions {
		s, err = Reduce(s, a)
		require.NoError(t, err, a.String())
	}
	return s
}

func TestAddHabit_Defaults(t *testing.T) {
	s := mustReduce(t, Empty(), AddHabit{ID: "x", Name: "  Read  ", Today: "2024-05-01"})
	h, ok := s.Habit("x")
	require.True(t, ok)
	assert.Equal(t, "Read", h.Name)
	assert.Equal(t, habit.Binary, h.Type)
	assert.Equal(t, 1, h.Target)
	assert.Equal(t, habit.Productivity, h.Category)
	assert.Equal(t, "2024-05-01", h.CreatedAt)
}

func TestAddHabit_Rejects(t *testing.T) {
	s := seeded(t)
	for _, a := range []Action{
		AddHabit{ID: "y", Name: "  ", Today: "2024-05-01"},
		AddHabit{ID: "bin", Name: "dup", Today: "2024-05-01"},
		AddHabit{ID: "z", Name: "neg", Target: -2, Today: "2024-05-01"},
		AddHabit{ID: "z", Name: "bad day", Today: "05/01/2024"},
	} {
		next, err := Reduce(s, a)
		assert.Error(t, err)
		assert.Equal(t, s, next)
	}
}

func TestToggleHabit_CachesScore(t *testing.T) {
	s := seeded(t)
	s = mustReduce(t, s,
		ToggleHabit{HabitID: "bin", DayKey: "2024-05-01"},
		ToggleHabit{HabitID: "cnt", DayKey: "2024-05-01", Value: intp(2)},
	)

	assert.Equal(t, habit.Score{Total: 75, Completed: 1.5, TotalHabits: 2}, s.Scores["2024-05-01"])
	assert.Equal(t, habit.Log{Completed: true, Value: 1}, s.DailyLogs["2024-05-01"].HabitLogs["bin"])
}

func TestToggleHabit_CountCycles(t *testing.T) {
	s := seeded(t)
	var values []int
	for i := 0; i < 6; i++ {
		s = mustReduce(t, s, ToggleHabit{HabitID: "cnt", DayKey: "2024-05-02"})
		l := s.DailyLogs["2024-05-02"].HabitLogs["cnt"]
		assert.Equal(t, l.Value >= 4, l.Completed)
		values = append(values, l.Value)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 0, 1}, values)
}

func TestToggleHabit_PastDayLeavesOtherDays(t *testing.T) {
	s := seeded(t)
	s = mustReduce(t, s, ToggleHabit{HabitID: "bin", DayKey: "2024-05-03"})
	s = mustReduce(t, s, ToggleHabit{HabitID: "bin", DayKey: "2024-04-01"})

	assert.True(t, s.DailyLogs["2024-05-03"].HabitLogs["bin"].Completed)
	assert.True(t, s.DailyLogs["2024-04-01"].HabitLogs["bin"].Completed)
	assert.Equal(t, 50, s.Scores["2024-04-01"].Total)
}

func TestToggleHabit_UnknownHabit(t *testing.T) {
	_, err := Reduce(seeded(t), ToggleHabit{HabitID: "nope", DayKey: "2024-05-01"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := mustReduce(t, seeded(t), ToggleHabit{HabitID: "bin", DayKey: "2024-05-01"})
	frozen := before.Clone()

	_ = mustReduce(t, before,
		ToggleHabit{HabitID: "bin", DayKey: "2024-05-01"},
		ToggleHabit{HabitID: "cnt", DayKey: "2024-05-01"},
		DeleteHabit{ID: "cnt"},
		SetFactLearned{DayKey: "2024-05-01", Fact: "octopi have three hearts"},
	)
	assert.Equal(t, frozen, before)
}

func TestDeleteHabit_CascadesAcrossDays(t *testing.T) {
	s := seeded(t)
	s = mustReduce(t, s,
		ToggleHabit{HabitID: "bin", DayKey: "2024-05-01"},
		ToggleHabit{HabitID: "cnt", DayKey: "2024-05-01"},
		ToggleHabit{HabitID: "cnt", DayKey: "2024-05-02"},
		SetScreenTime{DayKey: "2024-05-03", Hours: 2},
	)
	onlyCnt := s.Scores["2024-05-02"]
	require.Equal(t, 2, onlyCnt.TotalHabits)

	s = mustReduce(t, s, DeleteHabit{ID: "cnt"})

	_, ok := s.Habit("cnt")
	assert.False(t, ok)
	for day, dl := range s.DailyLogs {
		assert.NotContains(t, dl.HabitLogs, "cnt", day)
	}
	assert.Equal(t, habit.Log{Completed: true, Value: 1}, s.DailyLogs["2024-05-01"].HabitLogs["bin"])
	assert.Contains(t, s.DailyLogs, "2024-05-02", "day log itself is kept")
	assert.Equal(t, 2.0, s.DailyLogs["2024-05-03"].ScreenTime)
	assert.Equal(t, habit.Score{Total: 100, Completed: 1, TotalHabits: 1}, s.Scores["2024-05-01"])
	assert.Equal(t, onlyCnt, s.Scores["2024-05-02"], "emptied day keeps its cached score")
}

func TestRemoveHabitFromDay(t *testing.T) {
	s := mustReduce(t, seeded(t),
		ToggleHabit{HabitID: "bin", DayKey: "2024-05-01"},
		ToggleHabit{HabitID: "cnt", DayKey: "2024-05-01"},
		ToggleHabit{HabitID: "cnt", DayKey: "2024-05-02"},
		RemoveHabitFromDay{HabitID: "cnt", DayKey: "2024-05-01"},
	)
	assert.NotContains(t, s.DailyLogs["2024-05-01"].HabitLogs, "cnt")
	assert.Contains(t, s.DailyLogs["2024-05-02"].HabitLogs, "cnt")
	_, ok := s.Habit("cnt")
	assert.True(t, ok)
	assert.Equal(t, 50, s.Scores["2024-05-01"].Total)
}

func TestRescoreDay(t *testing.T) {
	s := mustReduce(t, seeded(t), ToggleHabit{HabitID: "bin", DayKey: "2024-05-01"})
	assert.Equal(t, 50, s.Scores["2024-05-01"].Total)

	s = mustReduce(t, s,
		AddHabit{ID: "new", Name: "Walk", Today: "2024-05-01"},
		RescoreDay{DayKey: "2024-05-01"},
		RescoreDay{DayKey: "2024-06-01"},
	)
	assert.Equal(t, 33, s.Scores["2024-05-01"].Total)
	assert.NotContains(t, s.Scores, "2024-06-01")
}

func TestUpdateHabit(t *testing.T) {
	s := mustReduce(t, seeded(t), UpdateHabit{ID: "cnt", Name: strp("Veggies"), Target: intp(5), Link: strp("https://example.com")})
	h, _ := s.Habit("cnt")
	assert.Equal(t, "Veggies", h.Name)
	assert.Equal(t, 5, h.Target)
	assert.Equal(t, "https://example.com", h.Link)

	_, err := Reduce(s, UpdateHabit{ID: "cnt", Target: intp(0)})
	assert.Error(t, err)
	_, err = Reduce(s, UpdateHabit{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetSleep(t *testing.T) {
	s := mustReduce(t, seeded(t), SetSleep{DayKey: "2024-05-01", BedTime: strp("23:00")})
	assert.Nil(t, s.DailyLogs["2024-05-01"].Sleep.HoursSlept)

	s = mustReduce(t, s, SetSleep{DayKey: "2024-05-01", WakeTime: strp("06:30")})
	sl := s.DailyLogs["2024-05-01"].Sleep
	require.NotNil(t, sl.HoursSlept)
	assert.Equal(t, 7.5, *sl.HoursSlept)
	assert.NotContains(t, s.Scores, "2024-05-01", "sleep does not touch the score cache")

	_, err := Reduce(s, SetScreenTime{DayKey: "2024-05-01", Hours: -1})
	assert.Error(t, err)
}

func TestTasks(t *testing.T) {
	now := time.Date(2024, time.June, 12, 9, 0, 0, 0, time.Local)
	s := mustReduce(t, Empty(),
		AddTask{ID: "w", Title: "Weekly review", Recurring: period.Weekly, Term: task.TermLongTerm, Now: now},
		AddTask{ID: "o", Title: "Dentist", DueDate: "2024-06-20", Term: task.TermThisMonth, Now: now},
		CompleteTask{ID: "w", Now: now},
	)

	w, _ := s.Task("w")
	assert.Equal(t, task.TermToday, w.Term, "recurring tasks are always today")
	done, err := w.IsCompletedForDate("2024-06-15")
	require.NoError(t, err)
	assert.True(t, done)
	done, _ = w.IsCompletedForDate("2024-06-17")
	assert.False(t, done)

	assert.Len(t, s.TasksDueBy("2024-06-12"), 1)
	assert.Len(t, s.TasksDueBy("2024-06-20"), 2)
	assert.Len(t, s.TasksCompletedOn("2024-06-12"), 1)

	s = mustReduce(t, s, UpdateTask{ID: "o", DueDate: strp("")}, DeleteTask{ID: "w"})
	assert.Len(t, s.TasksDueBy("2024-06-12"), 1)
	_, err = Reduce(s, CompleteTask{ID: "w", Now: now})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoals(t *testing.T) {
	s := mustReduce(t, Empty(),
		AddGoal{ID: "g", Title: "Run a marathon", MilestonesText: "5k\n10k\n\nhalf\nfull"},
		ToggleMilestone{GoalID: "g", Index: 0},
		AddMilestone{GoalID: "g", Text: "recover"},
		UpdateMilestone{GoalID: "g", Index: 1, Text: "10k race"},
		DeleteMilestone{GoalID: "g", Index: 2},
		UpdateGoal{ID: "g", Title: "Marathon"},
	)
	g, ok := s.Goal("g")
	require.True(t, ok)
	assert.Equal(t, "Marathon", g.Title)
	assert.Len(t, g.Milestones, 4)
	assert.Equal(t, 25, g.Progress())

	_, err := Reduce(s, ToggleMilestone{GoalID: "g", Index: 9})
	assert.Error(t, err)

	s = mustReduce(t, s, DeleteGoal{ID: "g"})
	assert.Empty(t, s.Goals)
}

func TestIdeas(t *testing.T) {
	now := time.Now()
	status := idea.StatusPlanning
	s := mustReduce(t, Empty(),
		AddIdea{ID: "i", Text: "Board game", Now: now},
		AddIdeaPoint{IdeaID: "i", PointID: "p", Text: "rules draft"},
		ToggleIdeaPoint{IdeaID: "i", PointID: "p"},
		UpdateIdea{ID: "i", Status: &status, Notes: strp("coop"), NextStep: strp("playtest")},
	)
	x, ok := s.Idea("i")
	require.True(t, ok)
	assert.Equal(t, idea.StatusPlanning, x.Status)
	assert.Equal(t, habit.Productivity, x.Category)
	assert.Equal(t, 1, x.PointsDone())

	bad := idea.Status("archived")
	_, err := Reduce(s, UpdateIdea{ID: "i", Status: &bad})
	assert.Error(t, err)

	s = mustReduce(t, s, DeleteIdeaPoint{IdeaID: "i", PointID: "p"}, DeleteIdea{ID: "i"})
	assert.Empty(t, s.Ideas)
}

func TestPatch_OnlyTouchesPresentSlices(t *testing.T) {
	s := mustReduce(t, seeded(t),
		ToggleHabit{HabitID: "bin", DayKey: "2024-05-01"},
		AddTask{ID: "t", Title: "x", Now: time.Now()},
	)
	newHabits := []habit.Habit{{ID: "z", Name: "Swim", Type: habit.Binary, Target: 1, Category: habit.Workout}}

	next := mustReduce(t, s, Patch{Habits: newHabits})
	assert.Equal(t, newHabits, next.Habits)
	assert.Equal(t, s.Tasks, next.Tasks)
	assert.Equal(t, s.DailyLogs, next.DailyLogs)
	assert.Equal(t, s.Scores, next.Scores)
}

func TestPatch_RejectsInvalidHabit(t *testing.T) {
	s := seeded(t)
	bad := []habit.Habit{{ID: "neg", Name: "Broken", Type: habit.Count, Target: -1, Category: habit.Workout}}

	next, err := Reduce(s, Patch{Habits: bad, Tasks: []task.Task{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `habit "neg"`)
	assert.Equal(t, s, next)

	_, err = Reduce(s, Replace{State: State{Habits: bad}})
	assert.Error(t, err)
}

func TestReplace_FullOverwrite(t *testing.T) {
	s := mustReduce(t, seeded(t), AddTask{ID: "t", Title: "x", Now: time.Now()})
	remote := State{Habits: []habit.Habit{{ID: "r", Name: "Remote", Type: habit.Binary, Target: 1, Category: habit.Social}}}

	next := mustReduce(t, s, Replace{State: remote})
	assert.Equal(t, remote.Habits, next.Habits)
	assert.Empty(t, next.Tasks)
	assert.NotNil(t, next.DailyLogs)
}
