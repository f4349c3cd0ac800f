package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"visualtodo/internal/config"
)

// clearEnv unsets every variable Load reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvBackend,
		config.EnvLogLevel,
		config.EnvUnsplashAccessKey,
		config.EnvUnsplashBearerToken,
		config.EnvUnsplashEndpoint,
		config.EnvGoogleAPIKey,
		config.EnvGoogleEngineID,
		config.EnvGoogleEndpoint,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestNew_ExplicitDir(t *testing.T) {
	cfg, err := config.New("/tmp/custom")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != "/tmp/custom" {
		t.Errorf("expected dir /tmp/custom, got %q", cfg.Dir)
	}
	if cfg.Backend != config.BackendUnsplash {
		t.Errorf("expected default backend %q, got %q", config.BackendUnsplash, cfg.Backend)
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := config.DefaultConfigDir(); got != filepath.Join("/xdg", "visualtodo") {
		t.Errorf("unexpected default dir: %q", got)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != config.BackendUnsplash {
		t.Errorf("expected default backend, got %q", cfg.Backend)
	}
	if cfg.Unsplash.AccessKey != "" {
		t.Errorf("expected empty access key, got %q", cfg.Unsplash.AccessKey)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `
backend = "google"
log_level = "warn"

[unsplash]
access_key = "file-key"

[google]
api_key = "g-key"
engine_id = "cx-1"
`)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != config.BackendGoogle {
		t.Errorf("expected google backend, got %q", cfg.Backend)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log level warn, got %q", cfg.LogLevel)
	}
	if cfg.Unsplash.AccessKey != "file-key" {
		t.Errorf("expected access key from file, got %q", cfg.Unsplash.AccessKey)
	}
	if cfg.Google.APIKey != "g-key" || cfg.Google.EngineID != "cx-1" {
		t.Errorf("unexpected google config: %+v", cfg.Google)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), "[unsplash]\naccess_key = \"file-key\"\n")
	t.Setenv(config.EnvUnsplashAccessKey, "env-key")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Unsplash.AccessKey != "env-key" {
		t.Errorf("expected env key to win, got %q", cfg.Unsplash.AccessKey)
	}
}

func TestLoad_DotenvInConfigDir(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "UNSPLASH_ACCESS_KEY=dotenv-key\n")
	t.Cleanup(func() { os.Unsetenv(config.EnvUnsplashAccessKey) })

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Unsplash.AccessKey != "dotenv-key" {
		t.Errorf("expected key from .env, got %q", cfg.Unsplash.AccessKey)
	}
}

func TestLoad_DotenvDoesNotOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "UNSPLASH_ACCESS_KEY=dotenv-key\n")
	t.Setenv(config.EnvUnsplashAccessKey, "env-key")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Unsplash.AccessKey != "env-key" {
		t.Errorf("expected env key to win over .env, got %q", cfg.Unsplash.AccessKey)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvBackend, "bing")

	_, err := config.Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if err.Error() != "unknown backend: bing" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), "backend = \n")

	if _, err := config.Load(dir); err == nil {
		t.Fatal("expected error for invalid config.toml")
	}
}

func TestEffectiveLogLevel(t *testing.T) {
	cfg := &config.Config{}
	if got := cfg.EffectiveLogLevel(); got != "info" {
		t.Errorf("expected info, got %q", got)
	}
	cfg.LogLevel = "warn"
	if got := cfg.EffectiveLogLevel(); got != "warn" {
		t.Errorf("expected warn, got %q", got)
	}
	cfg.Debug = true
	if got := cfg.EffectiveLogLevel(); got != "debug" {
		t.Errorf("expected debug, got %q", got)
	}
}

func TestMask(t *testing.T) {
	if got := config.Mask(""); got != "(not set)" {
		t.Errorf("unexpected mask for empty: %q", got)
	}
	if got := config.Mask("abc"); got != "***" {
		t.Errorf("unexpected mask for short: %q", got)
	}
	if got := config.Mask("abcdefgh"); got != "****efgh" {
		t.Errorf("unexpected mask: %q", got)
	}
}
