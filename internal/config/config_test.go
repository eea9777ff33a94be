package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":3000" {
		t.Errorf("expected default addr :3000, got %s", cfg.Server.Addr)
	}
	if cfg.Database.Path == "" {
		t.Error("expected a default database path")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Log.Level)
	}
}

func TestLoadFromPath(t *testing.T) {
	t.Run("complete config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "atelier.yaml")
		content := `
server:
  addr: ":8080"
database:
  path: /tmp/shop.db
log:
  level: debug
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, loadedPath, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loadedPath != path {
			t.Errorf("expected path %s, got %s", path, loadedPath)
		}
		if cfg.Server.Addr != ":8080" {
			t.Errorf("expected :8080, got %s", cfg.Server.Addr)
		}
		if cfg.Database.Path != "/tmp/shop.db" {
			t.Errorf("expected /tmp/shop.db, got %s", cfg.Database.Path)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("expected debug, got %s", cfg.Log.Level)
		}
	})

	t.Run("partial config gets defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "atelier.yaml")
		if err := os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, _, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Server.Addr != ":9000" {
			t.Errorf("expected :9000, got %s", cfg.Server.Addr)
		}
		if cfg.Log.Level != "info" {
			t.Errorf("expected default level, got %s", cfg.Log.Level)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "atelier.yaml")
		if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		_, _, err := LoadFromPath(path)
		if err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "atelier.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":7070"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Addr != ":7070" {
		t.Errorf("expected :7070 after round trip, got %s", loaded.Server.Addr)
	}
}

func TestFindConfigPath(t *testing.T) {
	t.Run("env var wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "explicit.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv(EnvConfigPath, path)

		if got := FindConfigPath(); got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})

	t.Run("env var pointing nowhere is skipped", func(t *testing.T) {
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())

		if got := FindConfigPath(); got != "" {
			t.Errorf("expected empty path, got %s", got)
		}
	})

	t.Run("xdg config home", func(t *testing.T) {
		xdg := t.TempDir()
		dir := filepath.Join(xdg, ConfigDirName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", xdg)

		if got := FindConfigPath(); got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})
}

func TestDefaultDatabasePath(t *testing.T) {
	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/data")
		want := filepath.Join("/data", ConfigDirName, DatabaseFileName)
		if got := DefaultDatabasePath(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		t.Setenv("HOME", "/home/tailor")
		want := filepath.Join("/home/tailor", ".local", "share", ConfigDirName, DatabaseFileName)
		if got := DefaultDatabasePath(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}
