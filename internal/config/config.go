package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/justchokingaround/yt-tui/internal/media"
)

const (
	// AppName is used for every config, data and state directory
	AppName = "yt-tui"
	// ConfigFileName is the default config file inside GetConfigDir
	ConfigFileName = "config.jsonc"
	// EnvPrefix prefixes environment overrides, e.g. YT_TUI_API_KEY
	EnvPrefix = "YT_TUI"
)

// Config represents the application configuration
type Config struct {
	APIKey            string          `mapstructure:"api_key" yaml:"api_key"`
	OAuthClientID     string          `mapstructure:"oauth_client_id" yaml:"oauth_client_id"`
	OAuthClientSecret string          `mapstructure:"oauth_client_secret" yaml:"oauth_client_secret"`
	OAuthAccessToken  string          `mapstructure:"oauth_access_token" yaml:"oauth_access_token"`
	OAuthRefreshToken string          `mapstructure:"oauth_refresh_token" yaml:"oauth_refresh_token"`
	DefaultFilters    FilterSettings  `mapstructure:"default_filters" yaml:"default_filters"`
	HideWatched       bool            `mapstructure:"hide_watched" yaml:"hide_watched"`
	HistoryPath       string          `mapstructure:"history_path" yaml:"history_path"`
	MaxResults        int             `mapstructure:"max_results" yaml:"max_results"`
	API               APIConfig       `mapstructure:"api" yaml:"api"`
	Player            PlayerConfig    `mapstructure:"player" yaml:"player"`
	Clipboard         ClipboardConfig `mapstructure:"clipboard" yaml:"clipboard"`
	Database          DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Logging           LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// FilterSettings holds the filters applied at startup.
// Durations are whole seconds.
type FilterSettings struct {
	Channel     string  `mapstructure:"channel" yaml:"channel,omitempty"`
	MinDuration *uint64 `mapstructure:"min_duration" yaml:"min_duration,omitempty"`
	MaxDuration *uint64 `mapstructure:"max_duration" yaml:"max_duration,omitempty"`
	AfterDate   string  `mapstructure:"after_date" yaml:"after_date,omitempty"`
}

// Criteria converts the settings into the criteria the view engine applies
func (f FilterSettings) Criteria() media.FilterCriteria {
	criteria := media.FilterCriteria{
		Creator:   f.Channel,
		AfterDate: f.AfterDate,
	}
	if f.MinDuration != nil {
		criteria.MinDuration = media.Seconds(*f.MinDuration)
	}
	if f.MaxDuration != nil {
		criteria.MaxDuration = media.Seconds(*f.MaxDuration)
	}
	return criteria
}

// APIConfig configures the YouTube Data API client
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// PlayerConfig configures the external video player
type PlayerConfig struct {
	// Command replaces the built-in mpv/haruna candidates when set
	Command    string   `mapstructure:"command" yaml:"command"`
	Args       []string `mapstructure:"args" yaml:"args"`
	YTDLFormat string   `mapstructure:"ytdl_format" yaml:"ytdl_format"`
}

// ClipboardConfig configures clipboard fallbacks
type ClipboardConfig struct {
	// Command receives the copied text on stdin when the system clipboard is unavailable
	Command string `mapstructure:"command" yaml:"command"`
}

// DatabaseConfig configures the sqlite database
type DatabaseConfig struct {
	Path           string `mapstructure:"path" yaml:"path"`
	MaxConnections int    `mapstructure:"max_connections" yaml:"max_connections"`
	WALMode        bool   `mapstructure:"wal_mode" yaml:"wal_mode"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	Color      bool   `mapstructure:"color" yaml:"color"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// DefaultYTDLFormat caps playback at 1080p
const DefaultYTDLFormat = "best[height<=?1080]/bestvideo[height<=?1080]+bestaudio/best"

// SetDefaults registers every default value on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("oauth_client_id", "")
	v.SetDefault("oauth_client_secret", "")
	v.SetDefault("oauth_access_token", "")
	v.SetDefault("oauth_refresh_token", "")
	v.SetDefault("default_filters.channel", "")
	v.SetDefault("default_filters.after_date", "")
	v.SetDefault("hide_watched", false)
	v.SetDefault("history_path", "watch_history.json")
	v.SetDefault("max_results", 50)

	// API
	v.SetDefault("api.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.max_retries", 2)
	v.SetDefault("api.user_agent", AppName)

	// Player
	v.SetDefault("player.command", "")
	v.SetDefault("player.args", []string{})
	v.SetDefault("player.ytdl_format", DefaultYTDLFormat)

	v.SetDefault("clipboard.command", "")

	// Database
	v.SetDefault("database.path", filepath.Join(getDataDir(), AppName, AppName+".db"))
	v.SetDefault("database.max_connections", 4)
	v.SetDefault("database.wal_mode", true)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", filepath.Join(getStateDir(), AppName, AppName+".log"))
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", false)
}

// Load reads the config file at path, falling back to the default location.
// A missing file yields the defaults. Line comments are allowed in the file.
func Load(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultConfigPath()
	}
	v.SetConfigType("json")

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := v.ReadConfig(bytes.NewReader(StripComments(raw))); err != nil {
			return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.HistoryPath != "" && !filepath.IsAbs(cfg.HistoryPath) {
		cfg.HistoryPath = filepath.Join(filepath.Dir(path), cfg.HistoryPath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, v, nil
}

// Validate checks value ranges the API and database depend on
func (c *Config) Validate() error {
	if c.MaxResults < 1 || c.MaxResults > 50 {
		return fmt.Errorf("max_results must be between 1 and 50, got %d", c.MaxResults)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database.max_connections must be at least 1, got %d", c.Database.MaxConnections)
	}
	if f := c.DefaultFilters; f.MinDuration != nil && f.MaxDuration != nil && *f.MinDuration > *f.MaxDuration {
		return fmt.Errorf("default_filters.min_duration (%d) exceeds max_duration (%d)", *f.MinDuration, *f.MaxDuration)
	}
	return nil
}

// HasCredentials reports whether any way of calling the API is configured
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" || c.OAuthAccessToken != "" || c.OAuthRefreshToken != ""
}

// GetConfigDir returns the configuration directory
func GetConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", AppName)
	}
	return filepath.Join(".", "."+AppName)
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// getDataDir returns the base XDG data directory
func getDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}
	return "."
}

// getStateDir returns the base XDG state directory
func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state")
	}
	return "."
}

// InitializeDirs creates the config, data and state directories
func InitializeDirs() error {
	dirs := []string{
		GetConfigDir(),
		filepath.Join(getDataDir(), AppName),
		filepath.Join(getStateDir(), AppName),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SaveDefaultConfig writes a commented default config file to path
func SaveDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

const defaultConfigTemplate = `{
  // YouTube Data API v3 key, used for trending, search and lookups
  "api_key": "",

  // OAuth credentials enable the personalized home feed.
  // An access token is used as is; a refresh token plus client id/secret
  // lets the token be renewed.
  "oauth_client_id": "",
  "oauth_client_secret": "",
  "oauth_access_token": "",
  "oauth_refresh_token": "",

  // Filters applied at startup. Durations are in seconds, after_date is RFC 3339.
  "default_filters": {
    "channel": "",
    // "min_duration": 60,
    // "max_duration": 3600,
    "after_date": ""
  },

  "hide_watched": false,

  // Legacy JSON watch history, imported with "yt-tui history import"
  "history_path": "watch_history.json",

  // Items per request (1-50)
  "max_results": 50,

  "api": {
    "base_url": "https://www.googleapis.com/youtube/v3",
    "timeout": "30s",
    "max_retries": 2,
    "user_agent": "yt-tui"
  },

  "player": {
    // Leave empty to try mpv, then haruna
    "command": "",
    "args": [],
    "ytdl_format": "best[height<=?1080]/bestvideo[height<=?1080]+bestaudio/best"
  },

  "clipboard": {
    // Used when the system clipboard is unavailable, e.g. "wl-copy"
    "command": ""
  },

  "database": {
    "max_connections": 4,
    "wal_mode": true
  },

  "logging": {
    // debug, info, warn, error
    "level": "info",
    // text or json
    "format": "text",
    "color": true,
    "max_size": 10,
    "max_backups": 3,
    "max_age": 28,
    "compress": false
  }
}
`
