package cmd

import (
	"fmt"
	"strings"

	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/period"
	"github.com/spf13/cobra"
)

func newCalendarCmd(a *app) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of daily scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := a.now()
			if month != "" {
				m, err := period.ParseMonthKey(month)
				if err != nil {
					return err
				}
				t = m
			}
			scores := a.store.Snapshot().Scores

			cmd.Printf("%s\n", t.Format("January 2006"))
			cmd.Println(" Su  Mo  Tu  We  Th  Fr  Sa")
			var row strings.Builder
			for i, d := range period.CalendarGrid(t) {
				cell := "    "
				if d.InCurrentMonth {
					cell = fmt.Sprintf("%3d ", d.Date.Day())
					if sc, ok := scores[d.Key]; ok {
						cell = colorScore(sc.Total, cell)
					} else {
						cell = colorScore(0, cell)
					}
				}
				row.WriteString(cell)
				if i%7 == 6 {
					if line := strings.TrimRight(row.String(), " "); line != "" {
						cmd.Println(line)
					}
					row.Reset()
				}
			}

			st := habit.ComputeMonthStats(scores, t)
			cmd.Println()
			cmd.Printf("Days tracked:   %d\n", st.DaysTracked)
			cmd.Printf("Average score:  %d%%\n", st.AvgScore)
			if st.BestDay != "" {
				cmd.Printf("Best day:       %s (%d%%)\n", st.BestDay, st.BestScore)
			}
			cmd.Printf("Longest streak: %d\n", st.LongestStreak)
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default this month)")
	return cmd
}
