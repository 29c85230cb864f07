package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultEnvironmentName = "local"
	defaultConnectionURL   = "sqlite://sqlcore.db"
)

// ResolvedEnvironment is a named environment resolved to a concrete
// connection string, config taking precedence over a per-environment
// dotenv file (".env.<name>") taking precedence over the built-in default.
type ResolvedEnvironment struct {
	Name          string
	ConnectionURL string
	DotenvPath    string
	FromConfig    bool
	FromDotenv    bool
}

// ResolveEnvironment resolves name (falling back to config's
// DefaultEnvironment, then "local") into a ResolvedEnvironment.
func ResolveEnvironment(config *Config, name string) (*ResolvedEnvironment, error) {
	envName := strings.TrimSpace(name)
	if envName == "" {
		if config != nil && config.DefaultEnvironment != "" {
			envName = config.DefaultEnvironment
		} else {
			envName = defaultEnvironmentName
		}
	}

	var envConfig EnvironmentConfig
	var envExists bool
	if config != nil && config.Environments != nil {
		if cfg, ok := config.Environments[envName]; ok {
			envConfig = cfg
			envExists = true
		}
	}

	resolved := &ResolvedEnvironment{Name: envName, ConnectionURL: envConfig.ConnectionURL, FromConfig: envExists}

	baseDir := config.ConfigDir()
	if baseDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			baseDir = cwd
		}
	}
	resolved.DotenvPath = filepath.Join(baseDir, ".env."+envName)

	if info, err := os.Stat(resolved.DotenvPath); err == nil && !info.IsDir() {
		values, err := godotenv.Read(resolved.DotenvPath)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", resolved.DotenvPath, err)
		}
		resolved.FromDotenv = true
		if value := values["CONNECTION_URL"]; value != "" && resolved.ConnectionURL == "" {
			resolved.ConnectionURL = value
		}
	}

	if resolved.ConnectionURL == "" {
		resolved.ConnectionURL = defaultConnectionURL
	}

	if config != nil && len(config.Environments) > 0 && !envExists && !resolved.FromDotenv {
		return nil, fmt.Errorf("config: environment %q not defined in sqlcore.toml and %s not found", envName, resolved.DotenvPath)
	}

	return resolved, nil
}
