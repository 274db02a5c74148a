// Package cloudsync backs up and restores the whole aggregate under a
// user-chosen sync code. There is no merging: whichever side is written last
// wins outright.
package cloudsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/internal/storage"
)

// DefaultCollection is the collection every sync document lives in.
const DefaultCollection = "users"

// DocumentVersion is written into every pushed document.
const DocumentVersion = "v11"

var (
	ErrNoRemoteData   = errors.New("no data found for this code")
	ErrSyncInProgress = errors.New("a sync is already in progress")
	ErrNoSyncCode     = errors.New("no sync code set")
	ErrEmptyCode      = errors.New("sync code is required")
)

// Document is the remote snapshot of the aggregate. LastUpdated is stamped
// by whoever stores it.
type Document struct {
	Version string `json:"version"`
	state.State
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Normalize turns user input into the storage key for a code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Display is the form a code is shown in.
func Display(code string) string {
	return strings.ToUpper(Normalize(code))
}

// Remote is a document store reachable over the network. Load returns nil
// and no error when nothing is stored under id.
type Remote interface {
	Save(ctx context.Context, collection, id string, doc Document) error
	Load(ctx context.Context, collection, id string) (*Document, error)
}

// StoreRemote serves Remote out of a local DocumentStore. The sync server
// uses it, and so can a client pointed at a shared database file.
type StoreRemote struct {
	Docs storage.DocumentStore
	Now  func() time.Time
}

func NewStoreRemote(docs storage.DocumentStore) *StoreRemote {
	return &StoreRemote{Docs: docs, Now: time.Now}
}

func (r *StoreRemote) Save(ctx context.Context, collection, id string, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc.LastUpdated = r.Now().UTC().Format(time.RFC3339Nano)
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return r.Docs.SaveDocument(collection, id, raw)
}

func (r *StoreRemote) Load(ctx context.Context, collection, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, ok, err := r.Docs.LoadDocument(collection, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %q: %w", id, err)
	}
	return &doc, nil
}

// Client pushes and pulls snapshots for a code. It keeps no state of its own.
type Client struct {
	Remote     Remote
	Collection string
	// Timeout bounds each remote call. Zero means no limit beyond ctx.
	Timeout time.Duration
}

func (c *Client) collection() string {
	if c.Collection == "" {
		return DefaultCollection
	}
	return c.Collection
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return context.WithCancel(ctx)
}

// Push writes the full snapshot s under code.
func (c *Client) Push(ctx context.Context, code string, s state.State) error {
	id := Normalize(code)
	if id == "" {
		return ErrEmptyCode
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	doc := Document{Version: DocumentVersion, State: s}
	if err := c.Remote.Save(ctx, c.collection(), id, doc); err != nil {
		return fmt.Errorf("push %s: %w", Display(id), err)
	}
	return nil
}

// Pull reads the snapshot stored under code, or nil when there is none.
func (c *Client) Pull(ctx context.Context, code string) (*Document, error) {
	id := Normalize(code)
	if id == "" {
		return nil, ErrEmptyCode
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	doc, err := c.Remote.Load(ctx, c.collection(), id)
	if err != nil {
		return nil, fmt.Errorf("pull %s: %w", Display(id), err)
	}
	return doc, nil
}
