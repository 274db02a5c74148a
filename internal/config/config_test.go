package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v4"
)

func TestLoad_MissingConfig(t *testing.T) {
	t.Setenv("LIFEMANAGER_CONFIG", "nonexistent.yaml")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LIFEMANAGER_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if cfg.SyncCollection != "users" {
		t.Errorf("expected default collection users, got %q", cfg.SyncCollection)
	}
}

func TestLoad_CustomConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	t.Setenv("LIFEMANAGER_CONFIG", configFile)

	c := Config{
		DBPath:      "/tmp/custom.db",
		SyncTimeout: 3 * time.Second,
		Nudge:       Nudge{Email: "me@example.com", Threshold: 70},
	}
	d, err := yaml.Marshal(&c)
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(configFile, d, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal("error opening config:", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("got db path %q", cfg.DBPath)
	}
	if cfg.Nudge.Threshold != 70 || cfg.Nudge.Email != "me@example.com" {
		t.Errorf("unexpected nudge config %+v", cfg.Nudge)
	}
	if cfg.SyncTimeout != 3*time.Second {
		t.Errorf("got sync timeout %v", cfg.SyncTimeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LIFEMANAGER_CONFIG", "")
	t.Setenv("LIFEMANAGER_DB_PATH", "env.db")
	t.Setenv("LIFEMANAGER_NUDGE_THRESHOLD", "35")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "env.db" || cfg.Nudge.Threshold != 35 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}

	t.Setenv("LIFEMANAGER_NUDGE_THRESHOLD", "lots")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-integer threshold")
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("LIFEMANAGER_CONFIG", "ignored.yaml")
	path := filepath.Join(t.TempDir(), "lm.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9090\"\nuse_keyring: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9090" || !cfg.UseKeyring {
		t.Errorf("file not applied: %+v", cfg)
	}
	if cfg.SyncCollection != "users" {
		t.Errorf("expected defaults to survive, got collection %q", cfg.SyncCollection)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
