package cmd

import (
	"context"
	"time"

	"github.com/brk3/lifemanager/internal/apiclient"
	"github.com/brk3/lifemanager/pkg/versioninfo"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `The "version" command displays the current version info for both client
and server if available.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Client Version: %s (built %s)\n", versioninfo.Version, versioninfo.BuildDate)

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			serverVersion, err := apiclient.New(a.cfg.APIBaseURL).Version(ctx)
			if err != nil {
				cmd.Println("Error fetching server version:", err)
				return
			}
			cmd.Printf("Server Version: %s\n", serverVersion.Version)
		},
	}
}
