package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHabits() []Habit {
	return []Habit{
		{ID: "h1", Name: "Meditate", Type: Binary, Target: 1, Category: SelfCare, CreatedAt: "2020-01-01"},
		{ID: "h2", Name: "Eat clean", Type: Count, Target: 4, Category: SelfCare, CreatedAt: "2020-01-01"},
	}
}

func TestComputeDailyScore_PartialCredit(t *testing.T) {
	logs := map[string]Log{
		"h1": {Completed: true, Value: 1},
		"h2": {Value: 2},
	}
	s := ComputeDailyScore(logs, sampleHabits(), "2024-05-01")
	assert.Equal(t, Score{Total: 75, Completed: 1.5, TotalHabits: 2}, s)
}

func TestComputeDailyScore_NoApplicableHabits(t *testing.T) {
	s := ComputeDailyScore(nil, nil, "2024-05-01")
	assert.Equal(t, Score{}, s)

	s = ComputeDailyScore(map[string]Log{"h1": {Completed: true}}, sampleHabits(), "2019-12-31")
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.TotalHabits)
}

func TestComputeDailyScore_FutureHabitExcluded(t *testing.T) {
	habits := append(sampleHabits(), Habit{ID: "h3", Type: Binary, Target: 1, CreatedAt: "2024-06-01"})
	logs := map[string]Log{"h1": {Completed: true, Value: 1}}

	s := ComputeDailyScore(logs, habits, "2024-05-31")
	assert.Equal(t, 2, s.TotalHabits)
	assert.Equal(t, 50, s.Total)

	s = ComputeDailyScore(logs, habits, "2024-06-01")
	assert.Equal(t, 3, s.TotalHabits)
	assert.Equal(t, 33, s.Total)
}

func TestComputeDailyScore_NoDayCountsEverything(t *testing.T) {
	habits := append(sampleHabits(), Habit{ID: "h3", Type: Binary, Target: 1, CreatedAt: "2099-01-01"})
	s := ComputeDailyScore(nil, habits, "")
	assert.Equal(t, 3, s.TotalHabits)
}

func TestComputeDailyScore_MissingCreatedAtApplies(t *testing.T) {
	habits := []Habit{{ID: "x", Type: Binary, Target: 1}}
	s := ComputeDailyScore(map[string]Log{"x": {Completed: true}}, habits, "1999-01-01")
	assert.Equal(t, 100, s.Total)
}

func TestComputeDailyScore_CountExceedsTarget(t *testing.T) {
	habits := []Habit{{ID: "c", Type: Count, Target: 3}}
	s := ComputeDailyScore(map[string]Log{"c": {Value: 7}}, habits, "")
	assert.Equal(t, 100, s.Total)
	assert.Equal(t, 1.0, s.Completed)
}

func TestComputeDailyScore_RoundsCompletedToOneDecimal(t *testing.T) {
	habits := []Habit{{ID: "c", Type: Count, Target: 3}}
	s := ComputeDailyScore(map[string]Log{"c": {Value: 1}}, habits, "")
	assert.Equal(t, 0.3, s.Completed)
	assert.Equal(t, 33, s.Total)
}

func TestComputeDailyScore_IdempotentAndPure(t *testing.T) {
	habits := sampleHabits()
	logs := map[string]Log{"h2": {Value: 3}}

	a := ComputeDailyScore(logs, habits, "2024-01-01")
	b := ComputeDailyScore(logs, habits, "2024-01-01")
	assert.Equal(t, a, b)
	assert.Equal(t, map[string]Log{"h2": {Value: 3}}, logs)
	assert.Equal(t, sampleHabits(), habits)
}

func TestToggle_CountWrapsAfterTarget(t *testing.T) {
	h := Habit{Type: Count, Target: 3}
	var l Log
	var seen []int
	for i := 0; i < 5; i++ {
		l = h.Toggle(l, nil)
		seen = append(seen, l.Value)
		assert.Equal(t, l.Value >= 3, l.Completed)
	}
	assert.Equal(t, []int{1, 2, 3, 0, 1}, seen)
}

func TestToggle_CountExplicitValue(t *testing.T) {
	h := Habit{Type: Count, Target: 3}
	v := 5
	l := h.Toggle(Log{Value: 1}, &v)
	assert.Equal(t, Log{Completed: true, Value: 5}, l)

	zero := 0
	l = h.Toggle(l, &zero)
	assert.Equal(t, Log{}, l)
}

func TestToggle_CountWithBadTargetActsAsOne(t *testing.T) {
	for _, target := range []int{0, -1} {
		h := Habit{Type: Count, Target: target}
		l := h.Toggle(Log{}, nil)
		assert.Equal(t, Log{Completed: true, Value: 1}, l)
		l = h.Toggle(l, nil)
		assert.Equal(t, Log{}, l)
	}
}

func TestToggle_BinaryFlips(t *testing.T) {
	h := Habit{Type: Binary, Target: 1}
	l := h.Toggle(Log{}, nil)
	assert.Equal(t, Log{Completed: true, Value: 1}, l)
	l = h.Toggle(l, nil)
	assert.Equal(t, Log{}, l)
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandNone, BandFor(0))
	assert.Equal(t, BandPoor, BandFor(1))
	assert.Equal(t, BandLow, BandFor(20))
	assert.Equal(t, BandFair, BandFor(59))
	assert.Equal(t, BandGood, BandFor(60))
	assert.Equal(t, BandExcellent, BandFor(100))
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("self-care")
	require.NoError(t, err)
	assert.Equal(t, SelfCare, c)
	assert.Equal(t, "Self-care", c.DisplayName())

	_, err = ParseCategory("hobbies")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Habit{Name: "Read", Type: Binary, Target: 1, Category: Learning}.Validate())
	assert.Error(t, Habit{Name: " ", Type: Binary, Target: 1, Category: Learning}.Validate())
	assert.Error(t, Habit{Name: "Read", Type: Count, Target: 0, Category: Learning}.Validate())
	assert.Error(t, Habit{Name: "Read", Type: "weird", Target: 1, Category: Learning}.Validate())
}
