// Package config loads TOML configuration for the graphdoc tool: history
// depth and retention, layout spacing, and the overview viewport.
package config
