package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var bandColors = map[habit.Band]*color.Color{
	habit.BandNone:      color.New(color.Faint),
	habit.BandPoor:      color.New(color.FgRed),
	habit.BandLow:       color.New(color.FgMagenta),
	habit.BandFair:      color.New(color.FgYellow),
	habit.BandGood:      color.New(color.FgGreen),
	habit.BandExcellent: color.New(color.FgGreen, color.Bold),
}

func colorScore(total int, s string) string {
	return bandColors[habit.BandFor(total)].Sprint(s)
}

func printScore(cmd *cobra.Command, sc habit.Score) {
	cmd.Printf("Score: %s (%.1f of %d habits)\n", colorScore(sc.Total, fmt.Sprintf("%d%%", sc.Total)), sc.Completed, sc.TotalHabits)
}

func newDayCmd(a *app) *cobra.Command {
	dayCmd := &cobra.Command{
		Use:   "day",
		Short: "Show or edit a day's log",
	}
	dayCmd.AddCommand(
		newDayShowCmd(a),
		newDaySleepCmd(a),
		newDayScreenCmd(a),
		newDayFactCmd(a),
	)
	return dayCmd
}

func newDayShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show habits, score, sleep and tasks for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			s, err := a.store.Dispatch(state.RescoreDay{DayKey: day})
			if err != nil {
				return err
			}
			dl := s.DayLog(day)

			cmd.Printf("%s\n\n", day)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, h := range s.ApplicableHabits(day) {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", shortID(h.ID), progressLabel(h, dl.HabitLogs[h.ID]), h.Name)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			sc, ok := s.Scores[day]
			if !ok {
				sc = habit.ComputeDailyScore(dl.HabitLogs, s.Habits, day)
			}
			cmd.Println()
			printScore(cmd, sc)

			if sl := dl.Sleep; sl.BedTime != "" || sl.WakeTime != "" {
				hours := "-"
				if sl.HoursSlept != nil {
					hours = strconv.FormatFloat(*sl.HoursSlept, 'f', -1, 64) + "h"
				}
				cmd.Printf("Sleep: %s to %s (%s)\n", orDash(sl.BedTime), orDash(sl.WakeTime), hours)
			}
			if dl.ScreenTime > 0 {
				cmd.Printf("Screen time: %gh\n", dl.ScreenTime)
			}
			if dl.FactLearned != "" {
				cmd.Printf("Learned: %s\n", dl.FactLearned)
			}

			due := s.TasksDueBy(day)
			if len(due) > 0 {
				cmd.Println("\nTasks:")
				for _, t := range due {
					done, err := t.IsCompletedForDate(day)
					if err != nil {
						return err
					}
					cmd.Printf("  %s\n", taskLine(t, done))
				}
			}
			return nil
		},
	}
	addDateFlag(cmd)
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newDaySleepCmd(a *app) *cobra.Command {
	var bed, wake string
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Record bed and wake times as HH:MM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			act := state.SetSleep{DayKey: day}
			if cmd.Flags().Changed("bed") {
				act.BedTime = &bed
			}
			if cmd.Flags().Changed("wake") {
				act.WakeTime = &wake
			}
			s, err := a.store.Dispatch(act)
			if err != nil {
				return err
			}
			if h := s.DailyLogs[day].Sleep.HoursSlept; h != nil {
				cmd.Printf("Slept %gh on %s\n", *h, day)
			} else {
				cmd.Printf("Saved sleep for %s\n", day)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bed, "bed", "", "bed time, e.g. 23:15")
	cmd.Flags().StringVar(&wake, "wake", "", "wake time, e.g. 07:00")
	addDateFlag(cmd)
	return cmd
}

func newDayScreenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen <hours>",
		Short: "Record screen time in hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad hours %q", args[0])
			}
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.SetScreenTime{DayKey: day, Hours: hours}); err != nil {
				return err
			}
			cmd.Printf("Screen time %gh on %s\n", hours, day)
			return nil
		},
	}
	addDateFlag(cmd)
	return cmd
}

func newDayFactCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fact <text>",
		Short: "Record something learned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.SetFactLearned{DayKey: day, Fact: args[0]}); err != nil {
				return err
			}
			cmd.Printf("Saved fact for %s\n", day)
			return nil
		},
	}
	addDateFlag(cmd)
	return cmd
}
