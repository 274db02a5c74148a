package cloudsync

import (
	"context"
	"time"

	"github.com/brk3/lifemanager/internal/logger"
	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/internal/storage"
	"golang.org/x/sync/semaphore"
)

// Outcome says which way Connect went.
type Outcome int

const (
	// Joined means a document existed and replaced local state.
	Joined Outcome = iota + 1
	// Created means no document existed and local state was published.
	Created
)

// Coordinator runs sync operations for the connected code against the app's
// state store. Only one operation runs at a time; a second one started
// meanwhile fails with ErrSyncInProgress rather than queueing.
type Coordinator struct {
	client *Client
	store  *state.Store
	codes  CodeStore
	kv     storage.Store
	sem    *semaphore.Weighted
	now    func() time.Time
}

// NewCoordinator wires a coordinator. kv holds the last-synced time.
func NewCoordinator(client *Client, store *state.Store, codes CodeStore, kv storage.Store) *Coordinator {
	return &Coordinator{
		client: client,
		store:  store,
		codes:  codes,
		kv:     kv,
		sem:    semaphore.NewWeighted(1),
		now:    time.Now,
	}
}

func (c *Coordinator) begin() (func(), error) {
	if !c.sem.TryAcquire(1) {
		return nil, ErrSyncInProgress
	}
	return func() { c.sem.Release(1) }, nil
}

// Code is the connected sync code, empty when disconnected.
func (c *Coordinator) Code() string {
	code, err := c.codes.SyncCode()
	if err != nil {
		logger.Warn("Failed to read sync code", "error", err)
		return ""
	}
	return code
}

// LastSynced is when the last push, pull or connect succeeded.
func (c *Coordinator) LastSynced() (time.Time, bool) {
	return lastSynced(c.kv)
}

func (c *Coordinator) markSynced(stamp string) {
	if stamp == "" {
		stamp = c.now().UTC().Format(time.RFC3339Nano)
	}
	storage.Set(c.kv, KeyLastSynced, stamp)
}

func (c *Coordinator) connectedCode() (string, error) {
	code, err := c.codes.SyncCode()
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", ErrNoSyncCode
	}
	return code, nil
}

// SyncToCloud pushes the current state under the connected code.
func (c *Coordinator) SyncToCloud(ctx context.Context) error {
	code, err := c.connectedCode()
	if err != nil {
		return err
	}
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	if err := c.client.Push(ctx, code, c.store.Snapshot()); err != nil {
		logger.Error("Sync to cloud failed", "error", err)
		return err
	}
	c.markSynced("")
	logger.Info("Synced to cloud", "code", Display(code))
	return nil
}

// SyncFromCloud loads the document for the connected code. Slices missing
// from the document keep their local values.
func (c *Coordinator) SyncFromCloud(ctx context.Context) error {
	code, err := c.connectedCode()
	if err != nil {
		return err
	}
	done, err := c.begin()
	if err != nil {
		return err
	}
	defer done()

	doc, err := c.client.Pull(ctx, code)
	if err != nil {
		logger.Error("Sync from cloud failed", "error", err)
		return err
	}
	if doc == nil {
		return ErrNoRemoteData
	}
	if _, err := c.store.Dispatch(patchFrom(doc.State)); err != nil {
		return err
	}
	c.markSynced(doc.LastUpdated)
	logger.Info("Loaded from cloud", "code", Display(code))
	return nil
}

// Connect joins code. If a document exists it replaces local state
// entirely; otherwise local state is published as the first document. The
// code is only remembered once that succeeds.
func (c *Coordinator) Connect(ctx context.Context, code string) (Outcome, error) {
	id := Normalize(code)
	if id == "" {
		return 0, ErrEmptyCode
	}
	done, err := c.begin()
	if err != nil {
		return 0, err
	}
	defer done()

	doc, err := c.client.Pull(ctx, id)
	if err != nil {
		logger.Error("Connect failed", "error", err)
		return 0, err
	}

	outcome := Joined
	stamp := ""
	if doc != nil {
		if _, err := c.store.Dispatch(state.Replace{State: doc.State}); err != nil {
			return 0, err
		}
		stamp = doc.LastUpdated
	} else {
		if err := c.client.Push(ctx, id, c.store.Snapshot()); err != nil {
			logger.Error("Connect failed", "error", err)
			return 0, err
		}
		outcome = Created
	}

	if err := c.codes.SetSyncCode(id); err != nil {
		logger.Warn("Failed to remember sync code", "error", err)
	}
	c.markSynced(stamp)
	logger.Info("Connected", "code", Display(id), "created", outcome == Created)
	return outcome, nil
}

// Disconnect forgets the code and the last-synced time. Local state and the
// remote document are left as they are.
func (c *Coordinator) Disconnect() error {
	if err := c.codes.ClearSyncCode(); err != nil {
		return err
	}
	storage.Set(c.kv, KeyLastSynced, "")
	return nil
}

func patchFrom(s state.State) state.Patch {
	return state.Patch{
		Habits:    s.Habits,
		Tasks:     s.Tasks,
		Goals:     s.Goals,
		Ideas:     s.Ideas,
		DailyLogs: s.DailyLogs,
		Scores:    s.Scores,
	}
}
