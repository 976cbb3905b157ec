// Package config provides configuration for the hub binary.
// Loads from: env vars > resourcehub.toml > built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the TOML file looked up in the working directory when no
// explicit path is given.
const ConfigFileName = "resourcehub.toml"

// Config holds all hub configuration, loaded from TOML + env.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Content ContentConfig `toml:"content"`
	Leads   LeadsConfig   `toml:"leads"`
	Search  SearchConfig  `toml:"search"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ContentConfig controls where documents come from. An empty Dir means the
// compiled-in document set; a non-empty Dir enables authoring/watch mode.
type ContentConfig struct {
	Dir string `toml:"dir"`
}

// LeadsConfig holds lead-capture settings.
type LeadsConfig struct {
	DBPath     string `toml:"db_path"`
	ForwardURL string `toml:"forward_url"`
}

// SearchConfig holds query-layer tuning.
type SearchConfig struct {
	Locale       string `toml:"locale"`        // BCP 47 tag for title collation, "" = und
	RelatedLimit int    `toml:"related_limit"` // default related-content count
}

// Default returns a Config with all built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Leads: LeadsConfig{
			DBPath: filepath.Join("data", "leads.db"),
		},
		Search: SearchConfig{
			RelatedLimit: 3,
		},
	}
}

// Load merges all configuration sources: defaults < TOML file < env vars.
// path may be empty, in which case resourcehub.toml in the working directory
// is used if present.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			path = ConfigFileName
		}
	}
	if path != "" {
		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		warnUnknownKeys(meta, path)
	}

	if v := os.Getenv("HUB_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HUB_CONTENT_DIR"); v != "" {
		cfg.Content.Dir = v
	}
	if v := os.Getenv("HUB_LEADS_DB"); v != "" {
		cfg.Leads.DBPath = v
	}
	if v := os.Getenv("HUB_FORWARD_URL"); v != "" {
		cfg.Leads.ForwardURL = v
	}
	if v := os.Getenv("HUB_LOCALE"); v != "" {
		cfg.Search.Locale = v
	}

	if cfg.Search.RelatedLimit < 0 {
		cfg.Search.RelatedLimit = 0
	}
	return cfg, nil
}

// warnUnknownKeys prints a warning for TOML keys that did not map to any
// config field, so typos don't fail silently.
func warnUnknownKeys(meta toml.MetaData, path string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	var keys []string
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	fmt.Fprintf(os.Stderr, "warning: unknown config keys in %s: %s\n",
		path, strings.Join(keys, ", "))
}
