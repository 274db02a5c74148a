// Package status holds the success/error messages shown after imports and
// sync operations.
package status

import "time"

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// User-facing texts.
const (
	TextSynced        = "Data synced to cloud!"
	TextSyncFailed    = "Failed to sync. Check connection."
	TextNoSyncCode    = "Not connected. Use: lifemanager sync connect <code>"
	TextSyncBusy      = "A sync is already running."
	TextLoaded        = "Data loaded from cloud!"
	TextNoData        = "No data found for this code."
	TextLoadFailed    = "Failed to load. Check connection."
	TextConnected     = "Connected! Data loaded from cloud."
	TextCodeCreated   = "New sync code created!"
	TextConnectFailed = "Connection failed. Try again."
	TextDisconnected  = "Disconnected from sync."
	TextInvalidBackup = "Invalid backup file"
	TextParseFailed   = "Failed to parse file"
)

const restoredDateLayout = "1/2/2006"

type Message struct {
	Kind Kind   `json:"type"`
	Text string `json:"message"`
}

func OK(text string) Message   { return Message{Kind: Success, Text: text} }
func Fail(text string) Message { return Message{Kind: Error, Text: text} }

// Restored is the message shown after a backup taken at exportedAt is
// applied.
func Restored(exportedAt time.Time) Message {
	return OK("Restored from " + exportedAt.Local().Format(restoredDateLayout))
}

func (m Message) String() string { return m.Text }
