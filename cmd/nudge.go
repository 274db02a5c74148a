package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/brk3/lifemanager/internal/nudge"
	"github.com/brk3/lifemanager/internal/nudge/resend"

	"github.com/spf13/cobra"
)

const resendKeyEnv = "LIFEMANAGER_RESEND_API_KEY"

func newNudgeCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "nudge",
		Short: "E-mail a reminder when today's score is low or recurring tasks are open",
		Long: `Check today and send a reminder through Resend when the score is under
nudge.threshold or recurring tasks are still open. Meant to be run from cron
in the evening.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold := a.cfg.Nudge.Threshold
			if dryRun {
				r := nudge.Check(a.store, a.now(), threshold)
				cmd.Println(resend.Subject(r))
				if len(r.PendingHabits) > 0 {
					cmd.Println("Pending habits:", strings.Join(r.PendingHabits, ", "))
				}
				if len(r.OpenTasks) > 0 {
					cmd.Println("Open tasks:", strings.Join(r.OpenTasks, ", "))
				}
				if !r.Due() {
					cmd.Println("Nothing to send.")
				}
				return nil
			}

			apiKey := os.Getenv(resendKeyEnv)
			if apiKey == "" {
				return fmt.Errorf("%s environment variable is not set", resendKeyEnv)
			}
			if a.cfg.Nudge.Email == "" {
				return fmt.Errorf("nudge.email is not set")
			}
			n := &resend.ResendNotifier{
				ApiKey: apiKey,
				Email:  a.cfg.Nudge.Email,
				From:   a.cfg.Nudge.From,
			}
			sent, err := nudge.Nudge(a.store, n, a.now(), threshold)
			if err != nil {
				return err
			}
			if sent {
				cmd.Printf("Nudge sent to %s\n", a.cfg.Nudge.Email)
			} else {
				cmd.Println("Nothing to send.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the reminder instead of sending it")
	return cmd
}
