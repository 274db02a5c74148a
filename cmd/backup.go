package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brk3/lifemanager/internal/backup"
	"github.com/brk3/lifemanager/internal/status"
	"github.com/brk3/lifemanager/pkg/period"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup file of everything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			if out == "-" {
				return backup.Export(cmd.OutOrStdout(), a.store.Snapshot(), now)
			}
			if out == "" {
				out = backup.FileName(period.DayKey(now))
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := backup.Export(f, a.store.Snapshot(), now); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			cmd.Printf("Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", `output file, "-" for stdout (default life-manager-backup-<date>.json)`)
	return cmd
}

func importMessage(r backup.Restore, err error) status.Message {
	switch {
	case err == nil:
		return status.Restored(r.ExportedAt)
	case errors.Is(err, backup.ErrInvalidBackup):
		return status.Fail(status.TextInvalidBackup)
	default:
		return status.Fail(status.TextParseFailed)
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore from a backup file",
		Long: `Restore from a backup file. Only the sections present in the file are
replaced; anything the file leaves out is kept as it is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			r, err := backup.ReadFrom(f)
			if err == nil {
				_, err = a.store.Dispatch(r.Patch)
			}
			if err != nil {
				err = fmt.Errorf("import %s: %w", args[0], err)
			}
			return a.report(cmd, importMessage(r, err), err)
		},
	}
}
