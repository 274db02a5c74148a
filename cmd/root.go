package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/brk3/lifemanager/internal/config"
	"github.com/brk3/lifemanager/internal/logger"
	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/internal/status"
	"github.com/brk3/lifemanager/internal/storage"
	"github.com/brk3/lifemanager/internal/storage/bolt"
	"github.com/brk3/lifemanager/internal/storage/memory"
	"github.com/brk3/lifemanager/pkg/period"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// memoryDB keeps everything in memory for the life of the process.
const memoryDB = ":memory:"

// skipStore marks commands that run without opening the local database.
const skipStore = "skip-store"

type database interface {
	storage.Store
	storage.DocumentStore
}

// app is what every subcommand works against. The root command fills it in
// before any subcommand runs.
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg     *config.Config
	db      database
	store   *state.Store
	closers []io.Closer
	now     func() time.Time
}

// reportedError has already been shown to the user as a status message.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func newApp() *app {
	return &app{now: time.Now}
}

// newRootCmd builds the command tree around a. Callers close a once the
// command has run, whether or not it failed.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lifemanager",
		Short: "Track habits, tasks, goals and ideas from the terminal",
		Long: `
	Life Manager tracks daily habits and scores each day, keeps a task list with
	recurring daily, weekly and monthly tasks, and holds goals with milestones
	and an ideas board. Data lives in a local database and can be backed up to
	a file or synced under a sync code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $LIFEMANAGER_CONFIG or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", `database file, or ":memory:"`)
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	rootCmd.AddCommand(
		newHabitCmd(a),
		newTaskCmd(a),
		newGoalCmd(a),
		newIdeaCmd(a),
		newDayCmd(a),
		newCalendarCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newSyncCmd(a),
		newServerCmd(a),
		newNudgeCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

func Execute() {
	a := newApp()
	rootCmd := newRootCmd(a)
	err := rootCmd.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), color.RedString("Error:"), err)
		}
		os.Exit(1)
	}
}

func (a *app) open(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if a.dbPath != "" {
		a.cfg.DBPath = a.dbPath
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}

	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	json := strings.EqualFold(a.cfg.LogFormat, "json")
	if a.cfg.LogFile != "" {
		a.closers = append(a.closers, logger.InitFile(a.cfg.LogFile, level, json))
	} else {
		logger.InitWriter(cmd.ErrOrStderr(), level, json)
	}

	if cmd.Annotations[skipStore] != "" {
		return nil
	}
	if a.cfg.DBPath == memoryDB {
		a.db = memory.New()
	} else {
		db, err := bolt.Open(a.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open db %s: %w", a.cfg.DBPath, err)
		}
		a.db = db
	}
	a.closers = append(a.closers, a.db)
	a.store = state.Open(a.db)
	logger.Debug("Opened local store", "path", a.cfg.DBPath)
	return nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// today is the day-key to act on: --date when given, otherwise today.
func (a *app) today(cmd *cobra.Command) (string, error) {
	if f := cmd.Flags().Lookup("date"); f != nil && f.Value.String() != "" {
		d := f.Value.String()
		if !period.ValidDayKey(d) {
			return "", fmt.Errorf("bad --date %q: want YYYY-MM-DD", d)
		}
		return d, nil
	}
	return period.DayKey(a.now()), nil
}

// report shows m and returns err marked as already shown.
func (a *app) report(cmd *cobra.Command, m status.Message, err error) error {
	if m.Kind == status.Error {
		cmd.Println(color.RedString("✗"), m.Text)
	} else {
		cmd.Println(color.GreenString("✓"), m.Text)
	}
	if err != nil {
		return reportedError{err: err}
	}
	return nil
}

func addDateFlag(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "day to act on as YYYY-MM-DD (default today)")
}
