package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brk3/lifemanager/internal/cloudsync"
	"github.com/brk3/lifemanager/internal/config"
	"github.com/brk3/lifemanager/internal/server"
	"github.com/brk3/lifemanager/internal/state"
	"github.com/brk3/lifemanager/internal/storage/memory"
	"github.com/brk3/lifemanager/pkg/habit"
	"github.com/brk3/lifemanager/pkg/versioninfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *memory.Store) {
	t.Helper()
	docs := memory.New()
	ts := httptest.NewServer(server.New(config.Default(), docs).Router())
	t.Cleanup(ts.Close)
	c := New(ts.URL)
	c.HTTP = ts.Client()
	return c, docs
}

func TestClient_SaveLoad(t *testing.T) {
	c, docs := newTestClient(t)
	ctx := context.Background()

	got, err := c.Load(ctx, "users", "abc")
	require.NoError(t, err)
	assert.Nil(t, got)

	s := state.Empty()
	s.Habits = []habit.Habit{{ID: "1", Name: "Walk", Type: habit.Binary, Target: 1, Category: habit.Workout}}
	require.NoError(t, c.Save(ctx, "users", "abc", cloudsync.Document{Version: cloudsync.DocumentVersion, State: s}))

	n, err := docs.CountDocuments("users")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err = c.Load(ctx, "users", "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s, got.State)
	assert.NotEmpty(t, got.LastUpdated)
}

func TestClient_AsRemote(t *testing.T) {
	c, _ := newTestClient(t)
	sync := &cloudsync.Client{Remote: c}
	ctx := context.Background()

	require.NoError(t, sync.Push(ctx, "Team-Code", state.Empty()))
	doc, err := sync.Pull(ctx, "TEAM-CODE")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, cloudsync.DocumentVersion, doc.Version)
}

func TestClient_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)
	c := New(ts.URL)

	_, err := c.Load(context.Background(), "users", "abc")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)

	err = c.Save(context.Background(), "users", "abc", cloudsync.Document{Version: "v11"})
	require.ErrorAs(t, err, &se)
}

func TestClient_Version(t *testing.T) {
	c, _ := newTestClient(t)
	info, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, versioninfo.Version, info.Version)
}
