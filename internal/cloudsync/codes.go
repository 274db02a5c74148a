package cloudsync

import (
	"errors"
	"time"

	"github.com/brk3/lifemanager/internal/logger"
	"github.com/brk3/lifemanager/internal/storage"
	"github.com/zalando/go-keyring"
)

// Local storage keys for the remembered sync settings.
const (
	KeySyncCode   = "lm_syncCode"
	KeyLastSynced = "lm_lastSynced"
)

// CodeStore remembers the connected sync code. An empty code means not
// connected.
type CodeStore interface {
	SyncCode() (string, error)
	SetSyncCode(code string) error
	ClearSyncCode() error
}

// KVCodes keeps the code in local storage next to the app state.
type KVCodes struct {
	KV storage.Store
}

func (k KVCodes) SyncCode() (string, error) {
	return storage.Get(k.KV, KeySyncCode, ""), nil
}

func (k KVCodes) SetSyncCode(code string) error {
	return storage.Put(k.KV, KeySyncCode, code)
}

func (k KVCodes) ClearSyncCode() error {
	return storage.Put(k.KV, KeySyncCode, "")
}

// KeyringCodes keeps the code in the OS keyring. When the keyring cannot be
// reached it falls back to Fallback, if set.
type KeyringCodes struct {
	Service  string
	User     string
	Fallback CodeStore
}

func (k KeyringCodes) SyncCode() (string, error) {
	code, err := keyring.Get(k.Service, k.User)
	switch {
	case err == nil:
		return code, nil
	case errors.Is(err, keyring.ErrNotFound):
		if k.Fallback != nil {
			return k.Fallback.SyncCode()
		}
		return "", nil
	case k.Fallback != nil:
		logger.Warn("Keyring unavailable, using local storage", "error", err)
		return k.Fallback.SyncCode()
	default:
		return "", err
	}
}

func (k KeyringCodes) SetSyncCode(code string) error {
	err := keyring.Set(k.Service, k.User, code)
	if err != nil && k.Fallback != nil {
		logger.Warn("Keyring unavailable, using local storage", "error", err)
		return k.Fallback.SetSyncCode(code)
	}
	return err
}

func (k KeyringCodes) ClearSyncCode() error {
	err := keyring.Delete(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		err = nil
	}
	if k.Fallback == nil {
		return err
	}
	if err != nil {
		logger.Warn("Keyring unavailable, using local storage", "error", err)
	}
	return k.Fallback.ClearSyncCode()
}

// lastSynced reads the remembered time of the last successful sync.
func lastSynced(kv storage.Store) (time.Time, bool) {
	raw := storage.Get(kv, KeyLastSynced, "")
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		logger.Warn("Corrupt last synced time", "value", raw, "error", err)
		return time.Time{}, false
	}
	return t, true
}
