package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Locale != "es-ES" {
		t.Errorf("Locale = %q, want es-ES", cfg.Locale)
	}
	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Quit = %q, want q", cfg.KeyMappings.Quit)
	}
	if cfg.ColorScheme.Primary == "" {
		t.Error("default color scheme should be populated")
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "obra")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	partial := "locale: en-US\nkey_mappings:\n  quit: Q\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Locale != "en-US" {
		t.Errorf("Locale = %q, want en-US", cfg.Locale)
	}
	if cfg.KeyMappings.Quit != "Q" {
		t.Errorf("Quit = %q, want Q", cfg.KeyMappings.Quit)
	}
	if cfg.KeyMappings.Add != "a" {
		t.Errorf("unset Add = %q, want default a", cfg.KeyMappings.Add)
	}
	if cfg.KeyMappings.AddTag != "g" || cfg.KeyMappings.RemoveTag != "G" {
		t.Errorf("unset tag keys = %q/%q, want g/G", cfg.KeyMappings.AddTag, cfg.KeyMappings.RemoveTag)
	}
	if cfg.ColorScheme.Danger == "" {
		t.Error("unset colors should fall back to defaults")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Locale = "de-DE"
	cfg.DataDir = "/tmp/obra-test"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Locale != "de-DE" || loaded.DataDir != "/tmp/obra-test" {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}
