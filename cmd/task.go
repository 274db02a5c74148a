package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/pkg/period"
	"github.com/brk3/lifemanager/pkg/task"
	"github.com/spf13/cobra"
)

func newTaskCmd(a *app) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage one-off and recurring tasks",
	}
	taskCmd.AddCommand(
		newTaskAddCmd(a),
		newTaskListCmd(a),
		newTaskDoneCmd(a),
		newTaskUpdateCmd(a),
		newTaskDeleteCmd(a),
	)
	return taskCmd
}

func (a *app) taskID(prefix string) (string, error) {
	s := a.store.Snapshot()
	ids := make([]string, len(s.Tasks))
	for i, t := range s.Tasks {
		ids[i] = t.ID
	}
	return resolveID("task", prefix, ids)
}

func newTaskAddCmd(a *app) *cobra.Command {
	var term, recurring, due string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := task.ParseTerm(term)
			if err != nil {
				return err
			}
			rec, err := period.ParseRecurrence(recurring)
			if err != nil {
				return err
			}
			id := newID()
			if _, err := a.store.Dispatch(state.AddTask{
				ID:        id,
				Title:     args[0],
				Term:      tm,
				Recurring: rec,
				DueDate:   due,
				Now:       a.now(),
			}); err != nil {
				return err
			}
			cmd.Printf("Added task %q (%s)\n", args[0], shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&term, "term", string(task.TermToday), `"Today", "This Week", "This Month" or "Long Term"`)
	cmd.Flags().StringVar(&recurring, "recurring", "", "daily, weekly or monthly")
	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD")
	return cmd
}

func taskLine(t task.Task, done bool) string {
	mark := "[ ]"
	if done {
		mark = "[x]"
	}
	extra := string(t.Term)
	if t.IsRecurring() {
		extra = string(t.Recurring)
	}
	if t.DueDate != "" {
		extra += ", due " + t.DueDate
	}
	return fmt.Sprintf("%s\t%s\t%s\t(%s)", shortID(t.ID), mark, t.Title, extra)
}

func newTaskListCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks due by a day, with their completion for that day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.today(cmd)
			if err != nil {
				return err
			}
			s := a.store.Snapshot()
			tasks := s.TasksDueBy(day)
			if all {
				tasks = s.Tasks
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range tasks {
				done, err := t.IsCompletedForDate(day)
				if err != nil {
					return err
				}
				fmt.Fprintln(tw, taskLine(t, done))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if completed := s.TasksCompletedOn(day); len(completed) > 0 && !all {
				cmd.Printf("\nCompleted on %s:\n", day)
				for _, t := range completed {
					if !t.IsRecurring() {
						cmd.Printf("  %s\n", t.Title)
					}
				}
			}
			if len(tasks) == 0 {
				cmd.Println("Nothing due.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "list every task")
	addDateFlag(cmd)
	return cmd
}

func newTaskDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle a task's completion; recurring tasks toggle for the current period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.taskID(args[0])
			if err != nil {
				return err
			}
			now := a.now()
			s, err := a.store.Dispatch(state.CompleteTask{ID: id, Now: now})
			if err != nil {
				return err
			}
			t, _ := s.Task(id)
			if t.IsCompleted(now) {
				cmd.Printf("Completed %q\n", t.Title)
			} else {
				cmd.Printf("Reopened %q\n", t.Title)
			}
			return nil
		},
	}
}

func newTaskUpdateCmd(a *app) *cobra.Command {
	var title, term, recurring, due string
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change a task's title, term, recurrence or due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.taskID(args[0])
			if err != nil {
				return err
			}
			act := state.UpdateTask{ID: id}
			f := cmd.Flags()
			if f.Changed("title") {
				act.Title = &title
			}
			if f.Changed("term") {
				tm, err := task.ParseTerm(term)
				if err != nil {
					return err
				}
				act.Term = &tm
			}
			if f.Changed("recurring") {
				rec, err := period.ParseRecurrence(recurring)
				if err != nil {
					return err
				}
				act.Recurring = &rec
			}
			if f.Changed("due") {
				act.DueDate = &due
			}
			if _, err := a.store.Dispatch(act); err != nil {
				return err
			}
			cmd.Printf("Updated task %s\n", shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&term, "term", "", "new term")
	cmd.Flags().StringVar(&recurring, "recurring", "", "daily, weekly, monthly or none")
	cmd.Flags().StringVar(&due, "due", "", "new due date, empty to clear")
	return cmd
}

func newTaskDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.taskID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.DeleteTask{ID: id}); err != nil {
				return err
			}
			cmd.Printf("Deleted task %s\n", shortID(id))
			return nil
		},
	}
}
