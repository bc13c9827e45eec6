// Package buildcfg holds the build configuration file: where the base
// Result comes from, which locales to expand, and where the rendered
// matrix lands.
package buildcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"beacon/internal/locale"
)

// Config is the parsed build file.
type Config struct {
	// BaseResult is the path of the canonical Result JSON. Empty means
	// use the built-in sample document.
	BaseResult string `json:"baseResult,omitempty" yaml:"baseResult,omitempty"`
	// DistDir is the output root for the rendered matrix.
	DistDir string `json:"distDir,omitempty" yaml:"distDir,omitempty"`
	// Locales are the translation targets besides the base document.
	Locales []string `json:"locales,omitempty" yaml:"locales,omitempty"`
	// HistoryDB is the path of the build history database. Empty
	// disables recording.
	HistoryDB string `json:"historyDb,omitempty" yaml:"historyDb,omitempty"`
}

// Default returns the configuration used when no build file is given.
func Default() *Config {
	return &Config{
		DistDir: "dist",
		Locales: append([]string(nil), locale.DefaultLocales...),
	}
}

// LoadFromPath reads a build file (YAML or JSON) and returns the parsed
// Config with defaults applied. Format is detected by extension
// (.yaml/.yml/.json) or by content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("buildcfg: read config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Load parses a Config from bytes. ext is the file extension for the
// format hint; empty means detect from content.
func Load(data []byte, ext string) (*Config, error) {
	c, err := parse(data, ext)
	if err != nil {
		return nil, err
	}
	if c.DistDir == "" {
		c.DistDir = "dist"
	}
	if len(c.Locales) == 0 {
		c.Locales = append([]string(nil), locale.DefaultLocales...)
	}
	return c, nil
}

func parse(data []byte, ext string) (*Config, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == ".yaml" {
		var c Config
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("buildcfg: parse yaml: %w", err)
		}
		return &c, nil
	}
	if ext == ".json" {
		var c Config
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("buildcfg: parse json: %w", err)
		}
		return &c, nil
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var c Config
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("buildcfg: parse json: %w", err)
		}
		return &c, nil
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("buildcfg: parse yaml: %w", err)
	}
	return &c, nil
}
