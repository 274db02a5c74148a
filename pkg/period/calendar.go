package period

import (
	"fmt"
	"time"
)

// GridCells is the number of cells in a month calendar: six Sunday-first weeks.
const GridCells = 42

type CalendarDay struct {
	Date           time.Time
	Key            string
	InCurrentMonth bool
}

// CalendarGrid lays out the month containing t as 42 days, starting with the
// trailing days of the previous month so that the first cell is a Sunday.
func CalendarGrid(t time.Time) []CalendarDay {
	t = t.Local()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	days := make([]CalendarDay, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		d := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, time.Local)
		days = append(days, CalendarDay{
			Date:           d,
			Key:            DayKey(d),
			InCurrentMonth: d.Month() == first.Month() && d.Year() == first.Year(),
		})
	}
	return days
}

// DaysInMonth returns the day-keys of every day of the month containing t.
func DaysInMonth(t time.Time) []string {
	t = t.Local()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	n := first.AddDate(0, 1, -1).Day()
	out := make([]string, 0, n)
	for d := 1; d <= n; d++ {
		out = append(out, DayKey(time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.Local)))
	}
	return out
}

// ParseMonthKey returns local midnight on the first day of the YYYY-MM month.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: want YYYY-MM", key)
	}
	return t, nil
}
