package bolt

import (
	"path/filepath"
	"testing"

	"github.com/brk3/lifemanager/internal/storage"
	"github.com/brk3/lifemanager/pkg/habit"
)

func newTestStore(t *testing.T) (*Store, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return store, cleanup
}

func TestOpen(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestGetRaw_Missing(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	v, found, err := store.GetRaw("nope")
	if err != nil {
		t.Fatalf("GetRaw failed: %v", err)
	}
	if found || v != nil {
		t.Fatalf("expected missing key, got found=%v value=%q", found, v)
	}
}

func TestTypedGetSet(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	habits := []habit.Habit{
		{ID: "1", Name: "guitar", Type: habit.Binary, Target: 1, Category: habit.Learning},
		{ID: "2", Name: "pushups", Type: habit.Count, Target: 20, Category: habit.Workout},
	}
	storage.Set(store, "habits", habits)

	got := storage.Get(store, "habits", []habit.Habit(nil))
	if len(got) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(got))
	}
	if got[1].Name != "pushups" || got[1].Target != 20 {
		t.Fatalf("unexpected habit %+v", got[1])
	}
}

func TestGet_CorruptFallsBackToDefault(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.PutRaw("scores", []byte("{not json")); err != nil {
		t.Fatalf("PutRaw failed: %v", err)
	}
	def := map[string]habit.Score{"2024-01-01": {Total: 1}}
	got := storage.Get(store, "scores", def)
	if len(got) != 1 || got["2024-01-01"].Total != 1 {
		t.Fatalf("expected default, got %v", got)
	}
}

func TestDocuments_SaveLoad(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.SaveDocument("users", "alpha", []byte(`{"version":"v11"}`)); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	doc, found, err := store.LoadDocument("users", "alpha")
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if !found {
		t.Fatal("expected document to be found")
	}
	if string(doc) != `{"version":"v11"}` {
		t.Fatalf("unexpected document %s", doc)
	}

	// overwrite wins
	if err := store.SaveDocument("users", "alpha", []byte(`{}`)); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	doc, _, _ = store.LoadDocument("users", "alpha")
	if string(doc) != `{}` {
		t.Fatalf("expected overwritten document, got %s", doc)
	}
}

func TestDocuments_CollectionIsolation(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.SaveDocument("users", "alpha", []byte(`{}`)); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	_, found, err := store.LoadDocument("other", "alpha")
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if found {
		t.Fatal("document leaked across collections")
	}

	n, err := store.CountDocuments("users")
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 document, got %d", n)
	}
	n, _ = store.CountDocuments("other")
	if n != 0 {
		t.Fatalf("expected 0 documents in unknown collection, got %d", n)
	}
}

func TestSaveDocument_EmptyID(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.SaveDocument("users", "", []byte(`{}`)); err == nil {
		t.Fatal("expected error for empty id")
	}
}
