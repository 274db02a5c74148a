package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brk3/lifemanager/internal/state"
	"github.com/spf13/cobra"
)

func newGoalCmd(a *app) *cobra.Command {
	goalCmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Manage goals and their milestones",
	}
	milestoneCmd := &cobra.Command{
		Use:   "milestone",
		Short: "Edit a goal's milestones",
	}
	milestoneCmd.AddCommand(
		newMilestoneAddCmd(a),
		newMilestoneToggleCmd(a),
		newMilestoneEditCmd(a),
		newMilestoneDeleteCmd(a),
	)
	goalCmd.AddCommand(
		newGoalAddCmd(a),
		newGoalListCmd(a),
		newGoalUpdateCmd(a),
		newGoalDeleteCmd(a),
		milestoneCmd,
	)
	return goalCmd
}

func (a *app) goalID(prefix string) (string, error) {
	s := a.store.Snapshot()
	ids := make([]string, len(s.Goals))
	for i, g := range s.Goals {
		ids[i] = g.ID
	}
	return resolveID("goal", prefix, ids)
}

// milestoneIndex turns a 1-based position into a slice index.
func milestoneIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad milestone number %q", arg)
	}
	return n - 1, nil
}

func newGoalAddCmd(a *app) *cobra.Command {
	var milestones []string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := newID()
			if _, err := a.store.Dispatch(state.AddGoal{
				ID:             id,
				Title:          args[0],
				MilestonesText: strings.Join(milestones, "\n"),
			}); err != nil {
				return err
			}
			cmd.Printf("Added goal %q (%s)\n", args[0], shortID(id))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&milestones, "milestone", "m", nil, "milestone, repeat for more")
	return cmd
}

func newGoalListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals := a.store.Snapshot().Goals
			if len(goals) == 0 {
				cmd.Println("No goals yet.")
				return nil
			}
			for _, g := range goals {
				cmd.Printf("%s  %s  %d%% (%d/%d)\n", shortID(g.ID), g.Title, g.Progress(), g.CompletedCount(), len(g.Milestones))
				for i, m := range g.Milestones {
					mark := " "
					if m.Completed {
						mark = "x"
					}
					cmd.Printf("    %d. [%s] %s\n", i+1, mark, m.Text)
				}
			}
			return nil
		},
	}
}

func newGoalUpdateCmd(a *app) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "update <goal-id>",
		Short: "Rename a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.goalID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.UpdateGoal{ID: id, Title: title}); err != nil {
				return err
			}
			cmd.Printf("Updated goal %s\n", shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newGoalDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.goalID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.DeleteGoal{ID: id}); err != nil {
				return err
			}
			cmd.Printf("Deleted goal %s\n", shortID(id))
			return nil
		},
	}
}

func newMilestoneAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <goal-id> <text>",
		Short: "Append a milestone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.goalID(args[0])
			if err != nil {
				return err
			}
			s, err := a.store.Dispatch(state.AddMilestone{GoalID: id, Text: args[1]})
			if err != nil {
				return err
			}
			g, _ := s.Goal(id)
			cmd.Printf("Added milestone %d to %q\n", len(g.Milestones), g.Title)
			return nil
		},
	}
}

func newMilestoneToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <goal-id> <n>",
		Short: "Toggle milestone n (1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.goalID(args[0])
			if err != nil {
				return err
			}
			i, err := milestoneIndex(args[1])
			if err != nil {
				return err
			}
			s, err := a.store.Dispatch(state.ToggleMilestone{GoalID: id, Index: i})
			if err != nil {
				return err
			}
			g, _ := s.Goal(id)
			cmd.Printf("%q is %d%% done\n", g.Title, g.Progress())
			return nil
		},
	}
}

func newMilestoneEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <goal-id> <n> <text>",
		Short: "Change the text of milestone n",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.goalID(args[0])
			if err != nil {
				return err
			}
			i, err := milestoneIndex(args[1])
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.UpdateMilestone{GoalID: id, Index: i, Text: args[2]}); err != nil {
				return err
			}
			cmd.Printf("Updated milestone %d\n", i+1)
			return nil
		},
	}
}

func newMilestoneDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id> <n>",
		Short: "Delete milestone n",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.goalID(args[0])
			if err != nil {
				return err
			}
			i, err := milestoneIndex(args[1])
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.DeleteMilestone{GoalID: id, Index: i}); err != nil {
				return err
			}
			cmd.Printf("Deleted milestone %d\n", i+1)
			return nil
		},
	}
}
