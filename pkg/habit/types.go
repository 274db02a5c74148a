package habit

import (
	"fmt"
	"strings"
)

type Type string

const (
	Binary Type = "binary"
	Count  Type = "count"
)

type Category string

const (
	Workout      Category = "WORKOUT"
	Professional Category = "PROFESSIONAL"
	SelfCare     Category = "SELF_CARE"
	Productivity Category = "PRODUCTIVITY"
	Social       Category = "SOCIAL"
	Learning     Category = "LEARNING"
)

// Categories lists every category in display order.
var Categories = []Category{Workout, Professional, SelfCare, Productivity, Social, Learning}

var categoryNames = map[Category]string{
	Workout:      "Workout",
	Professional: "Professional",
	SelfCare:     "Self-care",
	Productivity: "Productivity",
	Social:       "Social",
	Learning:     "Learning",
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) DisplayName() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return string(c)
}

// ParseCategory accepts either the enum value or the display name.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if c := Category(norm); c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type Habit struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     Type     `json:"type"`
	Target   int      `json:"target"`
	Category Category `json:"category"`
	// CreatedAt is the day-key the habit was added on. Empty means the
	// habit applies to every day.
	CreatedAt string `json:"createdAt,omitempty"`
	Streak    int    `json:"streak"`
	Link      string `json:"link,omitempty"`
}

// AppliesTo reports whether the habit counts towards the given day.
func (h Habit) AppliesTo(dayKey string) bool {
	return h.CreatedAt == "" || h.CreatedAt <= dayKey
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name is required")
	}
	if h.Type != Binary && h.Type != Count {
		return fmt.Errorf("bad habit type %q: must be binary or count", h.Type)
	}
	if h.Target < 1 {
		return fmt.Errorf("bad habit target %d: must be at least 1", h.Target)
	}
	if !h.Category.Valid() {
		return fmt.Errorf("unknown category %q", h.Category)
	}
	return nil
}

// Log is one habit's progress on one day.
type Log struct {
	Completed bool `json:"completed"`
	// Value may exceed the target of a count habit.
	Value int `json:"value"`
}

// Toggle advances a day's log for h. Binary habits flip. Count habits take
// explicit when given, otherwise step by one and wrap to zero after the
// target.
func (h Habit) Toggle(cur Log, explicit *int) Log {
	if h.Type == Binary {
		if cur.Completed {
			return Log{Completed: false, Value: 0}
		}
		return Log{Completed: true, Value: 1}
	}
	target := max(h.Target, 1)
	var v int
	if explicit != nil {
		v = *explicit
	} else {
		v = (cur.Value + 1) % (target + 1)
	}
	return Log{Completed: v >= target, Value: v}
}

type Sleep struct {
	BedTime    string   `json:"bedTime,omitempty"`
	WakeTime   string   `json:"wakeTime,omitempty"`
	HoursSlept *float64 `json:"hoursSlept,omitempty"`
}

// DailyLog holds everything recorded for one day-key.
type DailyLog struct {
	HabitLogs   map[string]Log `json:"habitLogs"`
	Sleep       Sleep          `json:"sleep"`
	ScreenTime  float64        `json:"screenTime"`
	FactLearned string         `json:"factLearned"`
}

type Score struct {
	Total       int     `json:"total"`
	Completed   float64 `json:"completed"`
	TotalHabits int     `json:"totalHabits"`
}

// Summary is the per-habit history rollup.
type Summary struct {
	HabitID       string `json:"habit_id"`
	Name          string `json:"name"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	FirstLogged   string `json:"first_logged,omitempty"`
	TotalDaysDone int    `json:"total_days_done"`
	BestMonth     int    `json:"best_month"`
	ThisMonth     int    `json:"this_month"`
}
