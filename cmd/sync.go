package cmd

import (
	"time"

	"github.com/brk3/lifemanager/internal/apiclient"
	"github.com/brk3/lifemanager/internal/cloudsync"
	"github.com/brk3/lifemanager/internal/status"
	"github.com/spf13/cobra"
)

const (
	keyringService = "lifemanager"
	keyringUser    = "sync-code"
)

func (a *app) coordinator() *cloudsync.Coordinator {
	client := &cloudsync.Client{
		Remote:     apiclient.New(a.cfg.APIBaseURL),
		Collection: a.cfg.SyncCollection,
		Timeout:    a.cfg.SyncTimeout,
	}
	var codes cloudsync.CodeStore = cloudsync.KVCodes{KV: a.db}
	if a.cfg.UseKeyring {
		codes = cloudsync.KeyringCodes{Service: keyringService, User: keyringUser, Fallback: codes}
	}
	return cloudsync.NewCoordinator(client, a.store, codes, a.db)
}

func newSyncCmd(a *app) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Back up and restore everything under a sync code",
		Long: `Sync stores a full snapshot under a sync code on the server at api_base_url.
There is no merging: a push overwrites the server copy and a pull overwrites
the local one.`,
	}
	syncCmd.AddCommand(
		&cobra.Command{
			Use:   "connect <code>",
			Short: "Join a code, or publish local data under a new one",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := a.coordinator().Connect(cmd.Context(), args[0])
				return a.report(cmd, cloudsync.ConnectStatus(out, err), err)
			},
		},
		&cobra.Command{
			Use:   "push",
			Short: "Upload local data to the connected code",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				err := a.coordinator().SyncToCloud(cmd.Context())
				return a.report(cmd, cloudsync.PushStatus(err), err)
			},
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Replace local data with the connected code's copy",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				err := a.coordinator().SyncFromCloud(cmd.Context())
				return a.report(cmd, cloudsync.PullStatus(err), err)
			},
		},
		&cobra.Command{
			Use:   "disconnect",
			Short: "Forget the sync code",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.coordinator().Disconnect(); err != nil {
					return err
				}
				return a.report(cmd, cloudsync.DisconnectStatus(), nil)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the connected code and when it last synced",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c := a.coordinator()
				code := c.Code()
				if code == "" {
					cmd.Println(status.TextNoSyncCode)
					return nil
				}
				cmd.Printf("Sync code: %s\n", cloudsync.Display(code))
				if at, ok := c.LastSynced(); ok {
					cmd.Printf("Last synced: %s\n", at.Local().Format(time.DateTime))
				}
				return nil
			},
		},
	)
	return syncCmd
}
