// Package config handles saltino.toml run settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up next to a program
const FileName = "saltino.toml"

// Config represents a saltino.toml file.
type Config struct {
	Run    Run    `toml:"run"`
	Output Output `toml:"output"`

	// Path is the file the configuration was read from (set at load time).
	Path string `toml:"-"`
}

// Run configures program execution.
type Run struct {
	MaxSteps int  `toml:"max_steps"`
	Rewrite  bool `toml:"rewrite"`
	Stats    bool `toml:"stats"`
}

// Output configures diagnostics.
type Output struct {
	Color   *bool `toml:"color"` // nil keeps terminal detection
	Verbose bool  `toml:"verbose"`
}

// Load parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %s in %s", undecoded[0], path)
	}
	if c.Run.MaxSteps < 0 {
		return nil, fmt.Errorf("run.max_steps must not be negative in %s", path)
	}

	c.Path = path
	return &c, nil
}

// FindAndLoad walks up from startDir to find a saltino.toml file, then
// loads it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}
