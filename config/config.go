package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Graph     GraphConfig     `json:"graph" toml:"graph"`
	Refs      RefsConfig      `json:"refs" toml:"refs"`
	Highlight HighlightConfig `json:"highlight" toml:"highlight"`
}

// GraphConfig holds graph building and rendering options.
type GraphConfig struct {
	MaxCommits int      `json:"maxCommits" toml:"maxCommits"` // 0 = unlimited
	Backend    string   `json:"backend" toml:"backend"`       // "gogit" or "gitcli"
	Palette    []string `json:"palette" toml:"palette"`       // Lane colors, cycled by lane number
}

// RefsConfig selects the refs whose history is drawn.
type RefsConfig struct {
	Include       []string `json:"include" toml:"include"` // Glob patterns over short ref names
	Exclude       []string `json:"exclude" toml:"exclude"`
	Tags          bool     `json:"tags" toml:"tags"`
	Remotes       bool     `json:"remotes" toml:"remotes"`
	DefaultBranch string   `json:"defaultBranch" toml:"defaultBranch"` // Default: "HEAD"
}

// HighlightConfig holds commit subject highlighting options.
type HighlightConfig struct {
	Patterns []string `json:"patterns" toml:"patterns"` // Case-insensitive regexes
}

// Backend names accepted in GraphConfig.Backend.
const (
	BackendGoGit  = "gogit"
	BackendGitCLI = "gitcli"
)

var candidateNames = []string{".gitlanes.json", ".gitlanes.toml"}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			MaxCommits: 0,
			Backend:    BackendGoGit,
			Palette:    []string{"green", "yellow", "blue", "magenta", "cyan", "red"},
		},
		Refs: RefsConfig{
			Include:       []string{},
			Exclude:       []string{},
			DefaultBranch: "HEAD",
		},
		Highlight: HighlightConfig{
			Patterns: []string{
				`\bfix(ed|es)?\b`,
				`\bhotfix\b`,
				`\brevert\b`,
			},
		},
	}
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	switch c.Graph.Backend {
	case "", BackendGoGit, BackendGitCLI:
	default:
		return fmt.Errorf("invalid backend %q: expected %s or %s", c.Graph.Backend, BackendGoGit, BackendGitCLI)
	}
	if c.Graph.MaxCommits < 0 {
		return fmt.Errorf("maxCommits must not be negative, got %d", c.Graph.MaxCommits)
	}
	return nil
}

// LoadConfig loads configuration from a file, merging with defaults.
// Files ending in .toml are decoded as TOML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfig()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// findConfig returns the first existing default config file, searching the
// working directory before the home directory.
func findConfig() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}

	for _, dir := range dirs {
		for _, name := range candidateNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

// SaveConfig saves configuration to a file in the format implied by its extension.
func SaveConfig(cfg *Config, path string) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
