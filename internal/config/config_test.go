package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/icontile/internal/layout"
)

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.OrganizeHotkey != def.OrganizeHotkey || cfg.Monitor != def.Monitor {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Layout.Direction != layout.DirectionVertical {
		t.Fatalf("expected vertical default, got %q", cfg.Layout.Direction)
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "layout:\n  direction: horizontal\n  sort_order: size_desc\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Layout.Direction != layout.DirectionHorizontal {
		t.Fatalf("expected horizontal, got %q", cfg.Layout.Direction)
	}
	if cfg.Layout.SortOrder != layout.SortSizeDesc {
		t.Fatalf("expected size_desc, got %q", cfg.Layout.SortOrder)
	}
	if cfg.OrganizeHotkey != DefaultConfig().OrganizeHotkey {
		t.Fatalf("expected default hotkey, got %q", cfg.OrganizeHotkey)
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("hotkye: Mod4-o\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty hotkey", func(c *Config) { c.OrganizeHotkey = "" }},
		{"bad monitor mode", func(c *Config) { c.Monitor = "leftmost" }},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad sort order", func(c *Config) { c.Layout.SortOrder = "name" }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidate_DuplicateGroupNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Groups = append(cfg.Groups, DefaultConfig().EffectiveGroups()...)
	cfg.Groups = append(cfg.Groups, cfg.Groups[0])
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected duplicate group to be rejected")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Layout.StartFromRight = true
	cfg.Preset = "compact"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !got.Layout.StartFromRight || got.Preset != "compact" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}
