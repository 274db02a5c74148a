package task

import (
	"testing"
	"time"

	"github.com/brk3/lifemanager/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.Local)
}

func TestComplete_WeeklyIsPeriodRelative(t *testing.T) {
	tk := Task{ID: "t", Title: "Laundry", Status: Pending, Recurring: period.Weekly}

	wednesday := at(2024, time.June, 12, 10)
	tk = tk.Complete(wednesday)

	done, err := tk.IsCompletedForDate("2024-06-14") // Friday, same week
	require.NoError(t, err)
	assert.True(t, done)

	done, err = tk.IsCompletedForDate("2024-06-17") // Monday, next week
	require.NoError(t, err)
	assert.False(t, done)

	done, err = tk.IsCompletedForDate("2024-06-09") // Sunday that opens the week
	require.NoError(t, err)
	assert.True(t, done)
}

func TestComplete_RecurringToggleRemovesKey(t *testing.T) {
	tk := Task{ID: "t", Title: "Stretch", Recurring: period.Daily}
	now := at(2024, time.June, 12, 8)

	tk = tk.Complete(now)
	require.Contains(t, tk.Completions, "2024-06-12")
	assert.True(t, tk.Completions["2024-06-12"].Equal(now))
	assert.Equal(t, Status(""), tk.Status)

	tk = tk.Complete(now.Add(time.Hour))
	assert.NotContains(t, tk.Completions, "2024-06-12")
	assert.Empty(t, tk.Completions)
}

func TestComplete_DoesNotMutateOriginal(t *testing.T) {
	orig := Task{ID: "t", Title: "Budget", Recurring: period.Monthly, Completions: map[string]time.Time{}}
	_ = orig.Complete(at(2024, time.June, 1, 9))
	assert.Empty(t, orig.Completions)
}

func TestComplete_OneOffFlips(t *testing.T) {
	tk := Task{ID: "t", Title: "Call bank", Status: Pending}
	now := at(2024, time.June, 12, 8)

	tk = tk.Complete(now)
	assert.Equal(t, Done, tk.Status)
	require.NotNil(t, tk.CompletedAt)
	assert.True(t, tk.IsCompleted(now.AddDate(1, 0, 0)))

	tk = tk.Complete(now)
	assert.Equal(t, Pending, tk.Status)
	assert.Nil(t, tk.CompletedAt)
}

func TestCompletedOn(t *testing.T) {
	tk := Task{ID: "t", Title: "Review", Recurring: period.Weekly}
	tk = tk.Complete(at(2024, time.June, 12, 10))

	assert.True(t, tk.CompletedOn("2024-06-12"))
	assert.False(t, tk.CompletedOn("2024-06-13"))

	one := Task{ID: "o", Title: "Post letter", Status: Pending}.Complete(at(2024, time.June, 3, 18))
	assert.True(t, one.CompletedOn("2024-06-03"))
	assert.False(t, one.CompletedOn("2024-06-04"))
}

func TestDueBy(t *testing.T) {
	assert.True(t, Task{Recurring: period.Monthly, Status: Done}.DueBy("2024-01-01"))
	assert.True(t, Task{Status: Pending}.DueBy("2024-01-01"))
	assert.True(t, Task{Status: Pending, DueDate: "2024-01-01"}.DueBy("2024-01-01"))
	assert.False(t, Task{Status: Pending, DueDate: "2024-01-02"}.DueBy("2024-01-01"))
	assert.False(t, Task{Status: Done}.DueBy("2024-01-01"))
}

func TestParseTerm(t *testing.T) {
	term, err := ParseTerm("this week")
	require.NoError(t, err)
	assert.Equal(t, TermThisWeek, term)

	term, err = ParseTerm("")
	require.NoError(t, err)
	assert.Equal(t, TermToday, term)

	_, err = ParseTerm("someday")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Task{Title: "x"}.Validate())
	assert.Error(t, Task{Title: "  "}.Validate())
	assert.Error(t, Task{Title: "x", DueDate: "tomorrow"}.Validate())
	assert.Error(t, Task{Title: "x", Recurring: "hourly"}.Validate())
}
