package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultMaxChars = 500
	DefaultTitle    = "Claude Code Conversation Log"
)

type Config struct {
	ClaudeRoot string `toml:"claude_root"`
	MaxChars   int    `toml:"max_chars"`
	Title      string `toml:"title"`
	History    bool   `toml:"history"`
	DBPath     string `toml:"db_path"`
}

// Path returns the location of the optional config file.
func Path(home string) string {
	return filepath.Join(home, ".config", "ais-export", "config.toml")
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(Path(home), home)
}

// LoadFrom reads cfgPath on top of the defaults. A missing file is not an error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := &Config{
		ClaudeRoot: filepath.Join(home, ".claude", "projects"),
		MaxChars:   DefaultMaxChars,
		Title:      DefaultTitle,
		History:    true,
		DBPath:     filepath.Join(home, ".config", "ais-export", "history.db"),
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if cfg.MaxChars <= 0 {
		cfg.MaxChars = DefaultMaxChars
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	// expand ~ in paths
	cfg.ClaudeRoot = expandHome(cfg.ClaudeRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
