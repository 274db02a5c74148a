package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/spf13/cobra"
)

func newHabitCmd(a *app) *cobra.Command {
	habitCmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Manage and log daily habits",
	}
	habitCmd.AddCommand(
		newHabitAddCmd(a),
		newHabitListCmd(a),
		newHabitToggleCmd(a),
		newHabitUpdateCmd(a),
		newHabitDeleteCmd(a),
		newHabitRemoveCmd(a),
		newHabitSummaryCmd(a),
	)
	return habitCmd
}

func (a *app) habitID(prefix string) (string, error) {
	s := a.store.Snapshot()
	ids := make([]string, len(s.Habits))
	for i, h := range s.Habits {
		ids[i] = h.ID
	}
	return resolveID("habit", prefix, ids)
}

func newHabitAddCmd(a *app) *cobra.Command {
	var (
		typ, category, link string
		target              int
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := habit.ParseCategory(category)
			if err != nil {
				return err
			}
			today, err := a.today(cmd)
			if err != nil {
				return err
			}
			id := newID()
			if _, err := a.store.Dispatch(state.AddHabit{
				ID:       id,
				Name:     args[0],
				Type:     habit.Type(typ),
				Target:   target,
				Category: cat,
				Link:     link,
				Today:    today,
			}); err != nil {
				return err
			}
			cmd.Printf("Added habit %q (%s)\n", args[0], shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", string(habit.Binary), "binary or count")
	cmd.Flags().IntVar(&target, "target", 1, "daily target for count habits")
	cmd.Flags().StringVar(&category, "category", string(habit.Productivity), "habit category")
	cmd.Flags().StringVar(&link, "link", "", "optional link")
	addDateFlag(cmd)
	return cmd
}

func progressLabel(h habit.Habit, l habit.Log) string {
	if h.Type == habit.Count {
		mark := " "
		if l.Completed {
			mark = "x"
		}
		return fmt.Sprintf("[%s] %d/%d", mark, l.Value, h.Target)
	}
	if l.Completed {
		return "[x]"
	}
	return "[ ]"
}

func newHabitListCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits with their progress for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			s := a.store.Snapshot()
			logs := s.DayLog(day).HabitLogs

			habits := s.ApplicableHabits(day)
			if all {
				habits = s.Habits
			}
			if len(habits) == 0 {
				cmd.Println("No habits yet. Add one with: lifemanager habit add <name>")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, h := range habits {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(h.ID), progressLabel(h, logs[h.ID]), h.Name, h.Category.DisplayName())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include habits created after the day")
	addDateFlag(cmd)
	return cmd
}

func newHabitToggleCmd(a *app) *cobra.Command {
	var value int
	cmd := &cobra.Command{
		Use:   "toggle <habit-id>",
		Short: "Toggle a habit for a day, or set a count habit's value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.habitID(args[0])
			if err != nil {
				return err
			}
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			act := state.ToggleHabit{HabitID: id, DayKey: day}
			if cmd.Flags().Changed("value") {
				act.Value = &value
			}
			s, err := a.store.Dispatch(act)
			if err != nil {
				return err
			}
			h, _ := s.Habit(id)
			cmd.Printf("%s %s on %s\n", progressLabel(h, s.DailyLogs[day].HabitLogs[id]), h.Name, day)
			printScore(cmd, s.Scores[day])
			return nil
		},
	}
	cmd.Flags().IntVar(&value, "value", 0, "set a count habit to this value")
	addDateFlag(cmd)
	return cmd
}

func newHabitUpdateCmd(a *app) *cobra.Command {
	var (
		name, typ, category, link string
		target                    int
	)
	cmd := &cobra.Command{
		Use:   "update <habit-id>",
		Short: "Change a habit's name, type, target, category or link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.habitID(args[0])
			if err != nil {
				return err
			}
			act := state.UpdateHabit{ID: id}
			f := cmd.Flags()
			if f.Changed("name") {
				act.Name = &name
			}
			if f.Changed("type") {
				t := habit.Type(typ)
				act.Type = &t
			}
			if f.Changed("target") {
				act.Target = &target
			}
			if f.Changed("category") {
				c, err := habit.ParseCategory(category)
				if err != nil {
					return err
				}
				act.Category = &c
			}
			if f.Changed("link") {
				act.Link = &link
			}
			if _, err := a.store.Dispatch(act); err != nil {
				return err
			}
			cmd.Printf("Updated habit %s\n", shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&typ, "type", "", "binary or count")
	cmd.Flags().IntVar(&target, "target", 0, "new target")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&link, "link", "", "new link, empty to clear")
	return cmd
}

func newHabitDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <habit-id>",
		Short: "Delete a habit and its logs from every day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.habitID(args[0])
			if err != nil {
				return err
			}
			h, _ := a.store.Snapshot().Habit(id)
			if _, err := a.store.Dispatch(state.DeleteHabit{ID: id}); err != nil {
				return err
			}
			cmd.Printf("Deleted habit %q\n", h.Name)
			return nil
		},
	}
}

func newHabitRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <habit-id>",
		Short: "Clear a habit's log for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.habitID(args[0])
			if err != nil {
				return err
			}
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			s, err := a.store.Dispatch(state.RemoveHabitFromDay{HabitID: id, DayKey: day})
			if err != nil {
				return err
			}
			cmd.Printf("Cleared habit %s on %s\n", shortID(id), day)
			printScore(cmd, s.Scores[day])
			return nil
		},
	}
	addDateFlag(cmd)
	return cmd
}

func newHabitSummaryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <habit-id>",
		Short: "Show streaks and totals for a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.habitID(args[0])
			if err != nil {
				return err
			}
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			s := a.store.Snapshot()
			h, _ := s.Habit(id)
			sum := habit.Summarize(h, s.DailyLogs, day)

			cmd.Printf("%s\n", h.Name)
			cmd.Printf("  Current streak: %d\n", sum.CurrentStreak)
			cmd.Printf("  Longest streak: %d\n", sum.LongestStreak)
			cmd.Printf("  Days done:      %d\n", sum.TotalDaysDone)
			cmd.Printf("  This month:     %d\n", sum.ThisMonth)
			cmd.Printf("  Best month:     %d\n", sum.BestMonth)
			if sum.FirstLogged != "" {
				cmd.Printf("  First logged:   %s\n", sum.FirstLogged)
			}
			return nil
		},
	}
	addDateFlag(cmd)
	return cmd
}
