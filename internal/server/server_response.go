package server

import "errors"

var (
	errMissingVersion = errors.New("document version is required")
	errBadDayKey      = errors.New("day keys must be YYYY-MM-DD")
)

type SyncWriteResponse struct {
	Code        string `json:"code"`
	LastUpdated string `json:"lastUpdated"`
}
