// Package config loads sqlcore.toml, the project-level file naming
// connection environments the CLI can analyze/plan/apply against.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

// EnvironmentConfig describes one named environment from sqlcore.toml.
type EnvironmentConfig struct {
	ConnectionURL string `toml:"connection_url"`
	Description   string `toml:"description"`
}

// Config is the parsed contents of sqlcore.toml.
type Config struct {
	DefaultEnvironment string                       `toml:"default_environment"`
	Environments       map[string]EnvironmentConfig `toml:"environments"`
	ConfigFilePath     string                       `toml:"-"`
}

// ConfigDir returns the directory sqlcore.toml was loaded from, or "" for
// a zero-value Config.
func (c *Config) ConfigDir() string {
	if c == nil || c.ConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c.ConfigFilePath)
}

// PrintLoadConfigErrorDetails prints a TOML decode error's row/column,
// to *testing.T if given, else stdout.
func PrintLoadConfigErrorDetails(err error, t *testing.T) {
	var derr *toml.DecodeError
	if !errors.As(err, &derr) {
		return
	}
	row, col := derr.Position()
	if t != nil {
		t.Log(derr.String())
		t.Logf("error occurred at row %d, column %d", row, col)
		return
	}
	fmt.Println(derr.String())
	fmt.Printf("error occurred at row %d, column %d\n", row, col)
}

// LoadConfig walks up from the working directory looking for sqlcore.toml,
// stopping at the first project-root marker (.git, go.mod, package.json)
// it passes. A directory with no sqlcore.toml anywhere above it returns a
// zero-value Config, not an error.
func LoadConfig() (*Config, error) {
	configPath, err := findConfigPath()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("config: parsing toml: %w", err)
	}
	config.ConfigFilePath = configPath
	return &config, nil
}

func findConfigPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "sqlcore.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if isProjectRoot(dir) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isProjectRoot(dir string) bool {
	for _, marker := range []string{".git", "go.mod", "package.json"} {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
