package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/graphdoc/internal/engine"
	"github.com/dshills/graphdoc/internal/layout"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// History configures the undo ledger.
type History struct {
	// MaxEntries bounds the undo stack; the oldest entry is evicted when
	// it is exceeded.
	MaxEntries int `toml:"max_entries"`

	// KeepEmpty retains transactions that recorded no changes.
	KeepEmpty bool `toml:"keep_empty"`
}

// Layout configures the stack layout manager.
type Layout struct {
	// Spacing is the vertical gap between stacked children.
	Spacing float64 `toml:"spacing"`
}

// Overview configures the outline viewport.
type Overview struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Config is the root of the TOML document.
type Config struct {
	History  History  `toml:"history"`
	Layout   Layout   `toml:"layout"`
	Overview Overview `toml:"overview"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History:  History{MaxEntries: engine.DefaultMaxUndoEntries},
		Layout:   Layout{Spacing: layout.DefaultSpacing},
		Overview: Overview{Width: 200, Height: 150},
	}
}

// Load reads a TOML file over the defaults. A missing file is not an
// error; the defaults stand.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader decodes TOML over the defaults and validates the result.
func LoadReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c *Config) Validate() error {
	if c.History.MaxEntries < 1 {
		return fmt.Errorf("%w: history.max_entries must be at least 1, got %d",
			ErrInvalidConfig, c.History.MaxEntries)
	}
	if c.Layout.Spacing < 0 {
		return fmt.Errorf("%w: layout.spacing must not be negative, got %g",
			ErrInvalidConfig, c.Layout.Spacing)
	}
	if c.Overview.Width <= 0 || c.Overview.Height <= 0 {
		return fmt.Errorf("%w: overview viewport must be positive, got %gx%g",
			ErrInvalidConfig, c.Overview.Width, c.Overview.Height)
	}
	return nil
}

// EngineOptions maps the history section onto engine options.
func (c *Config) EngineOptions() []engine.Option {
	opts := []engine.Option{engine.WithMaxUndoEntries(c.History.MaxEntries)}
	if c.History.KeepEmpty {
		opts = append(opts, engine.WithKeepEmptyTransactions())
	}
	return opts
}
