// Package period maps points in time to the canonical day, week and month
// keys used to bucket daily logs, scores and recurring task completions.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the fixed-width YYYY-MM-DD form of a day-key. Keys compare
// lexicographically in chronological order.
const DayLayout = "2006-01-02"

// MonthLayout is the YYYY-MM form of a month key.
const MonthLayout = "2006-01"

// Recurrence is the repeat cadence of a recurring task. The empty value means
// the task does not recur.
type Recurrence string

const (
	None    Recurrence = ""
	Daily   Recurrence = "daily"
	Weekly  Recurrence = "weekly"
	Monthly Recurrence = "monthly"
)

// Valid reports whether r is None or one of the known cadences.
func (r Recurrence) Valid() bool {
	switch r {
	case None, Daily, Weekly, Monthly:
		return true
	}
	return false
}

// ParseRecurrence accepts the cadence names case-insensitively. "none" and
// the empty string both yield None.
func ParseRecurrence(s string) (Recurrence, error) {
	r := Recurrence(strings.ToLower(strings.TrimSpace(s)))
	if r == "none" {
		return None, nil
	}
	if !r.Valid() {
		return None, fmt.Errorf("unknown recurrence %q: must be daily, weekly or monthly", s)
	}
	return r, nil
}

// Midnight returns the start of t's calendar day in local time.
func Midnight(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// DayKey formats t as YYYY-MM-DD in local time.
func DayKey(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// ParseDayKey builds local midnight of the day named by key. It is the
// inverse of DayKey.
func ParseDayKey(key string) (time.Time, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return time.Time{}, fmt.Errorf("invalid day key %q: want YYYY-MM-DD", key)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
		}
		nums[i] = n
	}
	if nums[1] < 1 || nums[1] > 12 || nums[2] < 1 || nums[2] > 31 {
		return time.Time{}, fmt.Errorf("invalid day key %q: month or day out of range", key)
	}
	t := time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.Local)
	if t.Day() != nums[2] {
		return time.Time{}, fmt.Errorf("invalid day key %q: no such day", key)
	}
	return t, nil
}

// ValidDayKey reports whether key is a well-formed day-key.
func ValidDayKey(key string) bool {
	_, err := ParseDayKey(key)
	return err == nil
}

// WeekKey returns the day-key of the Sunday on or before t. Weeks run
// Sunday to Saturday.
func WeekKey(t time.Time) string {
	d := Midnight(t)
	sunday := time.Date(d.Year(), d.Month(), d.Day()-int(d.Weekday()), 0, 0, 0, 0, time.Local)
	return DayKey(sunday)
}

// MonthKey formats t as YYYY-MM in local time.
func MonthKey(t time.Time) string {
	return t.Local().Format(MonthLayout)
}

// Key returns the bucket that a completion of a task with recurrence r at t
// belongs to. The second return value is false when r is None.
//
// Callers must recompute the key for the date in question rather than cache
// it: a completion recorded today matches a query for day D only when
// Key(r, D) yields the same bucket.
func Key(r Recurrence, t time.Time) (string, bool) {
	switch r {
	case Daily:
		return DayKey(t), true
	case Weekly:
		return WeekKey(t), true
	case Monthly:
		return MonthKey(t), true
	}
	return "", false
}

// AddDays shifts a day-key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDayKey(key)
	if err != nil {
		return "", err
	}
	return DayKey(time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, time.Local)), nil
}
