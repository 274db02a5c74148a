package state

import (
	"github.com/brk3/lifemanager/pkg/goal"
	"github.com/brk3/lifemanager/pkg/habit"
)

const defaultCreatedAt = "2020-01-01"

// DefaultHabits is the roster a new install starts with.
func DefaultHabits() []habit.Habit {
	mk := func(id, name string, typ habit.Type, target int, cat habit.Category) habit.Habit {
		return habit.Habit{ID: id, Name: name, Type: typ, Target: target, Category: cat, CreatedAt: defaultCreatedAt}
	}
	news := mk("8", "Current events article", habit.Binary, 1, habit.Learning)
	news.Link = "https://www.nytimes.com"
	return []habit.Habit{
		mk("1", "Eat clean", habit.Count, 3, habit.SelfCare),
		mk("2", "Meditation", habit.Binary, 1, habit.SelfCare),
		mk("3", "Get out of the house", habit.Binary, 1, habit.SelfCare),
		mk("4", "Personal care", habit.Binary, 1, habit.SelfCare),
		mk("5", "Stretching", habit.Binary, 1, habit.Workout),
		mk("6", "Job applications", habit.Count, 25, habit.Professional),
		mk("7", "Workout", habit.Binary, 1, habit.Workout),
		news,
		mk("9", "Take vitamins", habit.Binary, 1, habit.SelfCare),
		mk("10", "Pray", habit.Binary, 1, habit.SelfCare),
	}
}

func DefaultGoals() []goal.Goal {
	return []goal.Goal{
		{ID: "1", Title: "Get job offer", MetricType: goal.MetricMilestone, Milestones: []goal.Milestone{
			{Text: "Resume updated"}, {Text: "50 applications"}, {Text: "10 interviews"},
		}},
		{ID: "2", Title: "Consistent fitness routine", MetricType: goal.MetricMilestone, Milestones: []goal.Milestone{
			{Text: "7 day streak"}, {Text: "14 day streak"}, {Text: "30 day streak"},
		}},
	}
}
