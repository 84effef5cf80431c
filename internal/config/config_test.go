package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "diskv" || cfg.DefaultFilter != "all" || cfg.DefaultIcon != "briefcase" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.ConfirmDelete {
		t.Fatal("expected confirm_delete default true")
	}
	if strings.HasPrefix(cfg.StorePath, "~") {
		t.Fatalf("expected expanded store path, got %q", cfg.StorePath)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasklist.toml")
	body := "store_path = \"" + filepath.ToSlash(filepath.Join(dir, "data")) + "\"\n" +
		"backend = \"sqlite\"\n" +
		"default_filter = \"active\"\n" +
		"confirm_delete = false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKLIST_DEFAULT_ICON", "book")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "sqlite" || cfg.DefaultFilter != "active" || cfg.ConfirmDelete {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.DefaultIcon != "book" {
		t.Fatalf("env override not applied: %+v", cfg)
	}
	if cfg.StoreLocation() != filepath.Join(dir, "data", "tasklist.db") {
		t.Fatalf("unexpected sqlite location: %q", cfg.StoreLocation())
	}

	t.Setenv("TASKLIST_BACKEND", "diskv")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Backend != "diskv" || cfg.StoreLocation() != cfg.StorePath {
		t.Fatalf("env backend override not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("TASKLIST_BACKEND", "redis")
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "tasklist.toml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("unexpected written path: %q", written)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatal("expected error when file exists without force")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("force overwrite: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load written default: %v", err)
	}
	if cfg.Backend != "diskv" || cfg.DefaultIcon != "briefcase" || !cfg.ConfirmDelete {
		t.Fatalf("unexpected loaded default: %+v", cfg)
	}
}
