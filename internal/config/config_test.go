package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"TASKPAD_CONFIG", "TASKPAD_BACKEND", "TASKPAD_DATA_DIR", "TASKPAD_STORAGE_KEY", "TASKPAD_DATE_LAYOUT", "TASKPAD_LOG_FILE"} {
		t.Setenv(name, "")
	}
}

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.Backend != "file" || cfg.StorageKey != "todo_app_v1" {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.DateLayout != DefaultDateLayout || cfg.DataDir == "" {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TASKPAD_BACKEND", "SQLite")
	t.Setenv("TASKPAD_DATA_DIR", "state/dir")
	t.Setenv("TASKPAD_STORAGE_KEY", "work_v1")
	t.Setenv("TASKPAD_DATE_LAYOUT", "2006-01-02 15:04")
	t.Setenv("TASKPAD_LOG_FILE", "debug.log")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.Backend != "sqlite" || cfg.DataDir != "state/dir" || cfg.StorageKey != "work_v1" {
		t.Fatalf("unexpected storage overrides: %+v", cfg)
	}
	if cfg.DateLayout != "2006-01-02 15:04" || cfg.LogFile != "debug.log" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "taskpad.yaml")
	doc := "backend: sqlite\ndata_dir: /tmp/from-file\ndate_layout: \"02 Jan 15:04\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKPAD_DATA_DIR", "/tmp/from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "sqlite" || cfg.DateLayout != "02 Jan 15:04" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.DataDir != "/tmp/from-env" {
		t.Fatalf("env should win over file: %+v", cfg)
	}
	if cfg.StorageKey != "todo_app_v1" {
		t.Fatalf("missing key should keep default: %+v", cfg)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "file" {
		t.Fatalf("unexpected backend: %+v", cfg)
	}
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("backend: memory\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKPAD_CONFIG", path)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "memory" {
		t.Fatalf("expected memory backend from TASKPAD_CONFIG file, got %+v", cfg)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("backend: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*RuntimeConfig)
	}{
		{"unknown backend", func(c *RuntimeConfig) { c.Backend = "redis" }},
		{"empty key", func(c *RuntimeConfig) { c.StorageKey = " " }},
		{"path key", func(c *RuntimeConfig) { c.StorageKey = "../x" }},
		{"empty dir", func(c *RuntimeConfig) { c.DataDir = "" }},
		{"empty layout", func(c *RuntimeConfig) { c.DateLayout = "" }},
	}
	for _, tc := range cases {
		cfg := DefaultRuntimeConfig()
		tc.mut(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", tc.name, err)
		}
	}

	mem := DefaultRuntimeConfig()
	mem.Backend = "memory"
	mem.DataDir = ""
	if err := mem.Validate(); err != nil {
		t.Fatalf("memory backend needs no data dir: %v", err)
	}
}
