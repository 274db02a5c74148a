package cloudsync

import (
	"errors"

	"github.com/brk3/lifemanager/internal/status"
)

// guardStatus covers the errors returned before any network call.
func guardStatus(err error) (status.Message, bool) {
	switch {
	case errors.Is(err, ErrNoSyncCode):
		return status.Fail(status.TextNoSyncCode), true
	case errors.Is(err, ErrSyncInProgress):
		return status.Fail(status.TextSyncBusy), true
	}
	return status.Message{}, false
}

// PushStatus is the message shown after SyncToCloud.
func PushStatus(err error) status.Message {
	if m, ok := guardStatus(err); ok {
		return m
	}
	if err != nil {
		return status.Fail(status.TextSyncFailed)
	}
	return status.OK(status.TextSynced)
}

// PullStatus is the message shown after SyncFromCloud.
func PullStatus(err error) status.Message {
	if m, ok := guardStatus(err); ok {
		return m
	}
	switch {
	case err == nil:
		return status.OK(status.TextLoaded)
	case errors.Is(err, ErrNoRemoteData):
		return status.Fail(status.TextNoData)
	default:
		return status.Fail(status.TextLoadFailed)
	}
}

// ConnectStatus is the message shown after Connect.
func ConnectStatus(o Outcome, err error) status.Message {
	if errors.Is(err, ErrSyncInProgress) {
		return status.Fail(status.TextSyncBusy)
	}
	switch {
	case err != nil:
		return status.Fail(status.TextConnectFailed)
	case o == Created:
		return status.OK(status.TextCodeCreated)
	default:
		return status.OK(status.TextConnected)
	}
}

// DisconnectStatus is the message shown after Disconnect.
func DisconnectStatus() status.Message {
	return status.OK(status.TextDisconnected)
}
