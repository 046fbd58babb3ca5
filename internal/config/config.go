// Package config handles the XDG configuration directory, its files, and
// store settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todolist"

	// SettingsFile holds store settings as a JSON object.
	SettingsFile = "config.json"

	// EnvFile holds optional KEY=value overrides.
	EnvFile = ".env"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Backend names accepted in Settings.Backend.
const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

// Defaults applied when a setting is empty.
const (
	DefaultDatabaseID = "(default)"
	DefaultCollection = "tasks"
)

// Settings selects and addresses the task store.
type Settings struct {
	Backend     string `json:"backend"`
	ProjectID   string `json:"project_id"`
	DatabaseID  string `json:"database_id"`
	Collection  string `json:"collection"`
	APIKey      string `json:"api_key"`
	DatabaseURL string `json:"database_url"`
	Timezone    string `json:"timezone"`
}

// envKeys maps environment variables to the setting they override.
var envKeys = map[string]func(*Settings) *string{
	"TODOLIST_BACKEND":      func(s *Settings) *string { return &s.Backend },
	"TODOLIST_PROJECT_ID":   func(s *Settings) *string { return &s.ProjectID },
	"TODOLIST_DATABASE_ID":  func(s *Settings) *string { return &s.DatabaseID },
	"TODOLIST_COLLECTION":   func(s *Settings) *string { return &s.Collection },
	"TODOLIST_API_KEY":      func(s *Settings) *string { return &s.APIKey },
	"TODOLIST_DATABASE_URL": func(s *Settings) *string { return &s.DatabaseURL },
	"TODOLIST_TIMEZONE":     func(s *Settings) *string { return &s.Timezone },
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings addresses the task store.
	Settings Settings

	// Log receives debug logs. Nil means discard.
	Log *slog.Logger
}

// New creates a Config for the default or specified config directory and
// loads its settings. Later sources win: config.json, then .env in the
// directory, then the process environment.
// If configDir is empty, uses XDG_CONFIG_HOME/todolist or $HOME/.config/todolist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
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

func (c *Config) load() error {
	data, err := os.ReadFile(c.SettingsPath())
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &c.Settings); err != nil {
			return fmt.Errorf("invalid %s: %w", SettingsFile, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}

	env, err := godotenv.Read(c.EnvPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("invalid %s: %w", EnvFile, err)
	}
	for key, field := range envKeys {
		if v, ok := env[key]; ok {
			*field(&c.Settings) = v
		}
		if v, ok := os.LookupEnv(key); ok {
			*field(&c.Settings) = v
		}
	}

	c.Settings.applyDefaults()
	return nil
}

func (s *Settings) applyDefaults() {
	if s.Backend == "" {
		s.Backend = BackendFirestore
	}
	if s.DatabaseID == "" {
		s.DatabaseID = DefaultDatabaseID
	}
	if s.Collection == "" {
		s.Collection = DefaultCollection
	}
}

// Location returns the zone naive deadlines are read in.
// An empty timezone means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Settings.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Settings.Timezone, err)
	}
	return loc, nil
}

// Logger returns the configured logger, or one that discards.
func (c *Config) Logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SettingsPath returns the path to config.json.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnvPath returns the path to the optional .env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// UsesOAuth reports whether the configured store authenticates with the
// stored OAuth token.
func (c *Config) UsesOAuth() bool {
	switch c.Settings.Backend {
	case BackendFirestore, "":
		return c.Settings.APIKey == ""
	}
	return false
}
