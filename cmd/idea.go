package cmd

import (
	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/idea"
	"github.com/spf13/cobra"
)

func newIdeaCmd(a *app) *cobra.Command {
	ideaCmd := &cobra.Command{
		Use:     "idea",
		Aliases: []string{"ideas"},
		Short:   "Capture ideas and move them towards done",
	}
	pointCmd := &cobra.Command{
		Use:   "point",
		Short: "Edit an idea's checklist",
	}
	pointCmd.AddCommand(
		newIdeaPointAddCmd(a),
		newIdeaPointToggleCmd(a),
		newIdeaPointDeleteCmd(a),
	)
	ideaCmd.AddCommand(
		newIdeaAddCmd(a),
		newIdeaListCmd(a),
		newIdeaUpdateCmd(a),
		newIdeaDeleteCmd(a),
		pointCmd,
	)
	return ideaCmd
}

func (a *app) ideaID(prefix string) (string, error) {
	s := a.store.Snapshot()
	ids := make([]string, len(s.Ideas))
	for i, x := range s.Ideas {
		ids[i] = x.ID
	}
	return resolveID("idea", prefix, ids)
}

func (a *app) pointID(ideaID, prefix string) (string, error) {
	x, _ := a.store.Snapshot().Idea(ideaID)
	ids := make([]string, len(x.Points))
	for i, p := range x.Points {
		ids[i] = p.ID
	}
	return resolveID("point", prefix, ids)
}

func newIdeaAddCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Capture an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := habit.ParseCategory(category)
			if err != nil {
				return err
			}
			id := newID()
			if _, err := a.store.Dispatch(state.AddIdea{ID: id, Text: args[0], Category: cat, Now: a.now()}); err != nil {
				return err
			}
			cmd.Printf("Added idea (%s)\n", shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", string(habit.Productivity), "idea category")
	return cmd
}

func newIdeaListCmd(a *app) *cobra.Command {
	var statusFilter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ideas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var want idea.Status
			if statusFilter != "" {
				st, err := idea.ParseStatus(statusFilter)
				if err != nil {
					return err
				}
				want = st
			}
			n := 0
			for _, x := range a.store.Snapshot().Ideas {
				if want != "" && x.Status != want {
					continue
				}
				n++
				cmd.Printf("%s  [%s] %s  (%s, %d/%d points)\n", shortID(x.ID), x.Status, x.Text, x.Category.DisplayName(), x.PointsDone(), len(x.Points))
				for _, p := range x.Points {
					mark := " "
					if p.Done {
						mark = "x"
					}
					cmd.Printf("    %s [%s] %s\n", shortID(p.ID), mark, p.Text)
				}
				if x.NextStep != "" {
					cmd.Printf("    next: %s\n", x.NextStep)
				}
				if x.Notes != "" {
					cmd.Printf("    notes: %s\n", x.Notes)
				}
			}
			if n == 0 {
				cmd.Println("No ideas yet.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&statusFilter, "status", "", "only ideas with this status")
	return cmd
}

func newIdeaUpdateCmd(a *app) *cobra.Command {
	var text, category, st, notes, next string
	cmd := &cobra.Command{
		Use:   "update <idea-id>",
		Short: "Change an idea's text, category, status, notes or next step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.ideaID(args[0])
			if err != nil {
				return err
			}
			act := state.UpdateIdea{ID: id}
			f := cmd.Flags()
			if f.Changed("text") {
				act.Text = &text
			}
			if f.Changed("category") {
				c, err := habit.ParseCategory(category)
				if err != nil {
					return err
				}
				act.Category = &c
			}
			if f.Changed("status") {
				s, err := idea.ParseStatus(st)
				if err != nil {
					return err
				}
				act.Status = &s
			}
			if f.Changed("notes") {
				act.Notes = &notes
			}
			if f.Changed("next") {
				act.NextStep = &next
			}
			if _, err := a.store.Dispatch(act); err != nil {
				return err
			}
			cmd.Printf("Updated idea %s\n", shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "new text")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&st, "status", "", "idea, exploring, planning, active or done")
	cmd.Flags().StringVar(&notes, "notes", "", "notes")
	cmd.Flags().StringVar(&next, "next", "", "next step")
	return cmd
}

func newIdeaDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <idea-id>",
		Short: "Delete an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.ideaID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.DeleteIdea{ID: id}); err != nil {
				return err
			}
			cmd.Printf("Deleted idea %s\n", shortID(id))
			return nil
		},
	}
}

func newIdeaPointAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <idea-id> <text>",
		Short: "Add a checklist point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.ideaID(args[0])
			if err != nil {
				return err
			}
			pid := newID()
			if _, err := a.store.Dispatch(state.AddIdeaPoint{IdeaID: id, PointID: pid, Text: args[1]}); err != nil {
				return err
			}
			cmd.Printf("Added point (%s)\n", shortID(pid))
			return nil
		},
	}
}

func newIdeaPointToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <idea-id> <point-id>",
		Short: "Tick or untick a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.ideaID(args[0])
			if err != nil {
				return err
			}
			pid, err := a.pointID(id, args[1])
			if err != nil {
				return err
			}
			s, err := a.store.Dispatch(state.ToggleIdeaPoint{IdeaID: id, PointID: pid})
			if err != nil {
				return err
			}
			x, _ := s.Idea(id)
			cmd.Printf("%d/%d points done\n", x.PointsDone(), len(x.Points))
			return nil
		},
	}
}

func newIdeaPointDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <idea-id> <point-id>",
		Short: "Delete a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.ideaID(args[0])
			if err != nil {
				return err
			}
			pid, err := a.pointID(id, args[1])
			if err != nil {
				return err
			}
			if _, err := a.store.Dispatch(state.DeleteIdeaPoint{IdeaID: id, PointID: pid}); err != nil {
				return err
			}
			cmd.Printf("Deleted point %s\n", shortID(pid))
			return nil
		},
	}
}
