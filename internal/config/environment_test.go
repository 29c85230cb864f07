package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveEnvironmentDefaults(t *testing.T) {
	t.Parallel()

	env, err := ResolveEnvironment(&Config{}, "")
	if err != nil {
		t.Fatalf("ResolveEnvironment returned error: %v", err)
	}
	if env.Name != defaultEnvironmentName {
		t.Fatalf("expected default environment name %q, got %q", defaultEnvironmentName, env.Name)
	}
	if env.ConnectionURL != defaultConnectionURL {
		t.Fatalf("expected default connection URL %q, got %q", defaultConnectionURL, env.ConnectionURL)
	}
}

func TestResolveEnvironmentFromConfig(t *testing.T) {
	t.Parallel()

	config := &Config{
		Environments: map[string]EnvironmentConfig{
			"staging": {ConnectionURL: "postgres://staging"},
		},
	}
	env, err := ResolveEnvironment(config, "staging")
	if err != nil {
		t.Fatalf("ResolveEnvironment returned error: %v", err)
	}
	if env.ConnectionURL != "postgres://staging" || !env.FromConfig {
		t.Fatalf("expected staging config to resolve, got %+v", env)
	}
}

func TestResolveEnvironmentFromDotenv(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	dotenvPath := filepath.Join(tempDir, ".env.staging")
	if err := os.WriteFile(dotenvPath, []byte("CONNECTION_URL=postgres://staging\n"), 0o600); err != nil {
		t.Fatalf("failed to write dotenv file: %v", err)
	}

	config := &Config{
		DefaultEnvironment: "staging",
		ConfigFilePath:     filepath.Join(tempDir, "sqlcore.toml"),
		Environments: map[string]EnvironmentConfig{
			"staging": {},
		},
	}

	env, err := ResolveEnvironment(config, "staging")
	if err != nil {
		t.Fatalf("ResolveEnvironment returned error: %v", err)
	}
	if env.ConnectionURL != "postgres://staging" || !env.FromDotenv {
		t.Fatalf("expected dotenv connection URL, got %+v", env)
	}
}

func TestResolveEnvironmentMissingDefinition(t *testing.T) {
	t.Parallel()

	config := &Config{
		Environments: map[string]EnvironmentConfig{
			"local": {ConnectionURL: "postgres://local"},
		},
		ConfigFilePath: filepath.Join(t.TempDir(), "sqlcore.toml"),
	}
	if _, err := ResolveEnvironment(config, "production"); err == nil {
		t.Fatal("expected error resolving an undefined environment, got nil")
	}
}
