// Package config handles the configuration directory, config file and credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "visualtodo"

	// ConfigFile is the TOML config filename inside the config directory.
	ConfigFile = "config.toml"

	// EnvFile is the dotenv filename read from the config and working directories.
	EnvFile = ".env"

	// LogFile is the diagnostic log filename used by the interactive UI.
	LogFile = "visualtodo.log"
)

// Backend names.
const (
	BackendUnsplash = "unsplash"
	BackendGoogle   = "google"
)

// DefaultBackend is used when no backend is configured.
const DefaultBackend = BackendUnsplash

// Environment variable names.
const (
	EnvBackend             = "VISUALTODO_BACKEND"
	EnvLogLevel            = "VISUALTODO_LOG_LEVEL"
	EnvUnsplashAccessKey   = "UNSPLASH_ACCESS_KEY"
	EnvUnsplashBearerToken = "UNSPLASH_BEARER_TOKEN"
	EnvUnsplashEndpoint    = "UNSPLASH_ENDPOINT"
	EnvGoogleAPIKey        = "GOOGLE_API_KEY"
	EnvGoogleEngineID      = "GOOGLE_CSE_ID"
	EnvGoogleEndpoint      = "GOOGLE_ENDPOINT"
)

// ErrMissingCredential is returned when the selected backend has no credential.
var ErrMissingCredential = errors.New("missing credential")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Backend selects the image finder ("unsplash" or "google").
	Backend string `toml:"backend"`

	// LogLevel is the diagnostic log level name.
	LogLevel string `toml:"log_level"`

	Unsplash UnsplashConfig `toml:"unsplash"`
	Google   GoogleConfig   `toml:"google"`
}

// UnsplashConfig configures the Unsplash backend.
type UnsplashConfig struct {
	AccessKey   string `toml:"access_key"`
	BearerToken string `toml:"bearer_token"`
	Endpoint    string `toml:"endpoint"`
}

// GoogleConfig configures the Google Custom Search backend.
type GoogleConfig struct {
	APIKey   string `toml:"api_key"`
	EngineID string `toml:"engine_id"`
	Endpoint string `toml:"endpoint"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/visualtodo or $HOME/.config/visualtodo.
// It reads nothing from disk; see Load.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Backend: DefaultBackend}, nil
}

// Load creates a Config and fills it from, in increasing priority:
// config.toml in the config dir, .env files, and the environment.
// .env values never override variables already set in the environment.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.FilePath()); err == nil {
		if _, err := toml.DecodeFile(cfg.FilePath(), cfg); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	}

	for _, path := range []string{filepath.Join(cfg.Dir, EnvFile), EnvFile} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Backend, EnvBackend)
	setFromEnv(&c.LogLevel, EnvLogLevel)
	setFromEnv(&c.Unsplash.AccessKey, EnvUnsplashAccessKey)
	setFromEnv(&c.Unsplash.BearerToken, EnvUnsplashBearerToken)
	setFromEnv(&c.Unsplash.Endpoint, EnvUnsplashEndpoint)
	setFromEnv(&c.Google.APIKey, EnvGoogleAPIKey)
	setFromEnv(&c.Google.EngineID, EnvGoogleEngineID)
	setFromEnv(&c.Google.Endpoint, EnvGoogleEndpoint)
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

// Validate checks that the backend name is known.
// Credentials are checked when the backend is built.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	switch c.Backend {
	case BackendUnsplash, BackendGoogle:
		return nil
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the path to the UI diagnostic log.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// EffectiveLogLevel returns "debug" when Debug is set, else LogLevel, else "info".
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "info"
}

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
