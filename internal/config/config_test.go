package config

import (
	"errors"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.History.MaxEntries != 1000 {
		t.Errorf("history.max_entries = %d, want 1000", cfg.History.MaxEntries)
	}
	if cfg.History.KeepEmpty {
		t.Error("keep_empty should default to false")
	}
	if cfg.Overview.Width <= 0 || cfg.Overview.Height <= 0 {
		t.Error("overview viewport should have positive defaults")
	}
}

func TestLoadReader(t *testing.T) {
	in := `
[history]
max_entries = 50
keep_empty = true

[layout]
spacing = 4.5

[overview]
width = 320
height = 240
`
	cfg, err := LoadReader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if cfg.History.MaxEntries != 50 || !cfg.History.KeepEmpty {
		t.Errorf("history = %+v, want max 50 keep_empty", cfg.History)
	}
	if cfg.Layout.Spacing != 4.5 {
		t.Errorf("layout.spacing = %g, want 4.5", cfg.Layout.Spacing)
	}
	if cfg.Overview.Width != 320 || cfg.Overview.Height != 240 {
		t.Errorf("overview = %+v, want 320x240", cfg.Overview)
	}
}

func TestLoadReaderPartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader("[history]\nmax_entries = 5\n"))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if cfg.History.MaxEntries != 5 {
		t.Errorf("history.max_entries = %d, want 5", cfg.History.MaxEntries)
	}
	if cfg.Overview.Width != 200 {
		t.Errorf("overview.width = %g, want default 200", cfg.Overview.Width)
	}
}

func TestLoadReaderUnknownField(t *testing.T) {
	if _, err := LoadReader(strings.NewReader("[history]\nbogus = 1\n")); err == nil {
		t.Error("unknown fields should be rejected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/graphdoc.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.MaxEntries != 1000 {
		t.Error("missing file should fall back to defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max entries", func(c *Config) { c.History.MaxEntries = 0 }},
		{"negative spacing", func(c *Config) { c.Layout.Spacing = -1 }},
		{"zero viewport", func(c *Config) { c.Overview.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	if got := len(cfg.EngineOptions()); got != 1 {
		t.Errorf("len(EngineOptions()) = %d, want 1", got)
	}
	cfg.History.KeepEmpty = true
	if got := len(cfg.EngineOptions()); got != 2 {
		t.Errorf("len(EngineOptions()) = %d, want 2", got)
	}
}
