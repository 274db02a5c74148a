package habit

import "math"

// ComputeDailyScore derives a day's score from its habit logs. Only habits
// applicable on dayKey count; an empty dayKey counts every habit. Missing
// logs are zero progress. Inputs are not modified.
func ComputeDailyScore(logs map[string]Log, habits []Habit, dayKey string) Score {
	var completed float64
	total := 0
	for _, h := range habits {
		if dayKey != "" && !h.AppliesTo(dayKey) {
			continue
		}
		total++
		completed += fraction(h, logs[h.ID])
	}

	s := Score{
		Completed:   math.Round(completed*10) / 10,
		TotalHabits: total,
	}
	if total > 0 {
		s.Total = int(math.Round(completed / float64(total) * 100))
	}
	return s
}

// fraction is binary all-or-nothing and count partial credit.
func fraction(h Habit, l Log) float64 {
	if h.Type != Count {
		if l.Completed {
			return 1
		}
		return 0
	}
	switch {
	case l.Completed || l.Value >= h.Target:
		return 1
	case l.Value > 0:
		return float64(l.Value) / float64(h.Target)
	}
	return 0
}

type Band int

const (
	BandNone Band = iota
	BandPoor
	BandLow
	BandFair
	BandGood
	BandExcellent
)

func (b Band) String() string {
	switch b {
	case BandPoor:
		return "poor"
	case BandLow:
		return "low"
	case BandFair:
		return "fair"
	case BandGood:
		return "good"
	case BandExcellent:
		return "excellent"
	}
	return "none"
}

// BandFor buckets a 0-100 score for display.
func BandFor(total int) Band {
	switch {
	case total >= 80:
		return BandExcellent
	case total >= 60:
		return BandGood
	case total >= 40:
		return BandFair
	case total >= 20:
		return BandLow
	case total > 0:
		return BandPoor
	}
	return BandNone
}
