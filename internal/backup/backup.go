// Package backup reads and writes the JSON backup file.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/pkg/period"
)

// FormatVersion is written into every export.
const FormatVersion = "v11"

var (
	ErrInvalidBackup = errors.New("invalid backup file")
	ErrParse         = errors.New("failed to parse file")
)

// File is the on-disk layout. Any of the embedded slices may be missing from
// an imported file; those decode as nil.
type File struct {
	Version    string `json:"version"`
	ExportedAt string `json:"exportedAt"`
	state.State
}

// Restore is a parsed backup ready to apply.
type Restore struct {
	Patch      state.Patch
	ExportedAt time.Time
}

// FileName is the suggested name for a backup taken on dayKey.
func FileName(dayKey string) string {
	return "life-manager-backup-" + dayKey + ".json"
}

// Export writes s as an indented backup stamped with now.
func Export(w io.Writer, s state.State, now time.Time) error {
	f := File{
		Version:    FormatVersion,
		ExportedAt: now.UTC().Format(time.RFC3339Nano),
		State:      s,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Import parses a backup. Only the slices present in the file end up in the
// returned patch, so applying it leaves the rest of the local state alone.
func Import(data []byte) (Restore, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return Restore{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if f.Version == "" || f.ExportedAt == "" {
		return Restore{}, ErrInvalidBackup
	}
	at, err := time.Parse(time.RFC3339Nano, f.ExportedAt)
	if err != nil {
		return Restore{}, fmt.Errorf("%w: exportedAt %q", ErrInvalidBackup, f.ExportedAt)
	}
	for day := range f.DailyLogs {
		if !period.ValidDayKey(day) {
			return Restore{}, fmt.Errorf("%w: bad day %q in dailyLogs", ErrInvalidBackup, day)
		}
	}
	for day := range f.Scores {
		if !period.ValidDayKey(day) {
			return Restore{}, fmt.Errorf("%w: bad day %q in scores", ErrInvalidBackup, day)
		}
	}
	for _, h := range f.Habits {
		if err := h.Validate(); err != nil {
			return Restore{}, fmt.Errorf("%w: habit %q: %v", ErrInvalidBackup, h.ID, err)
		}
	}
	return Restore{
		Patch: state.Patch{
			Habits:    f.Habits,
			Tasks:     f.Tasks,
			Goals:     f.Goals,
			Ideas:     f.Ideas,
			DailyLogs: f.DailyLogs,
			Scores:    f.Scores,
		},
		ExportedAt: at,
	}, nil
}

// ReadFrom is Import over a reader.
func ReadFrom(r io.Reader) (Restore, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Restore{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return Import(data)
}
