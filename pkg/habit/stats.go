package habit

import (
	"slices"
	"time"

	"github.com/brk3/lifemanager/pkg/period"
)

type MonthStats struct {
	AvgScore      int    `json:"avg_score"`
	DaysTracked   int    `json:"days_tracked"`
	BestDay       string `json:"best_day,omitempty"`
	BestScore     int    `json:"best_score"`
	LongestStreak int    `json:"longest_streak"`
}

// ComputeMonthStats summarises cached scores for the month containing t.
// Only days with a positive score count as tracked.
func ComputeMonthStats(scores map[string]Score, t time.Time) MonthStats {
	var st MonthStats
	sum, run := 0, 0
	for _, key := range period.DaysInMonth(t) {
		s, ok := scores[key]
		if !ok || s.Total <= 0 {
			run = 0
			continue
		}
		sum += s.Total
		st.DaysTracked++
		if s.Total > st.BestScore {
			st.BestScore = s.Total
			st.BestDay = key
		}
		run++
		st.LongestStreak = max(st.LongestStreak, run)
	}
	if st.DaysTracked > 0 {
		st.AvgScore = int(float64(sum)/float64(st.DaysTracked) + 0.5)
	}
	return st
}

// Summarize rolls up the completed days of h across logs relative to today.
func Summarize(h Habit, logs map[string]DailyLog, today string) Summary {
	sum := Summary{HabitID: h.ID, Name: h.Name}

	var days []string
	perMonth := map[string]int{}
	for key, dl := range logs {
		if l, ok := dl.HabitLogs[h.ID]; ok && fraction(h, l) >= 1 {
			days = append(days, key)
			perMonth[key[:7]]++
		}
	}
	if len(days) == 0 {
		return sum
	}

	slices.Sort(days)
	sum.FirstLogged = days[0]
	sum.TotalDaysDone = len(days)
	sum.ThisMonth = perMonth[today[:7]]
	for _, n := range perMonth {
		sum.BestMonth = max(sum.BestMonth, n)
	}
	sum.CurrentStreak, sum.LongestStreak = streaks(days, today)
	return sum
}

// streaks expects ascending unique day-keys. The current streak only counts
// if its latest day is today or yesterday.
func streaks(days []string, today string) (current, longest int) {
	yesterday, _ := period.AddDays(today, -1)

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		next, err := period.AddDays(days[i-1], 1)
		if err == nil && next == days[i] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	last := days[len(days)-1]
	if last != today && last != yesterday {
		return 0, longest
	}
	return run, longest
}
