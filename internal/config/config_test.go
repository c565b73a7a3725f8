package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDirs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	root := setupDirs(t)

	cfg, v, err := Load(filepath.Join(root, "nope.jsonc"))
	require.NoError(t, err)
	require.NotNil(t, v)

	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, 50, cfg.MaxResults)
	assert.False(t, cfg.HideWatched)
	assert.Equal(t, "https://www.googleapis.com/youtube/v3", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, DefaultYTDLFormat, cfg.Player.YTDLFormat)
	assert.Equal(t, filepath.Join(root, "data", AppName, AppName+".db"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(root, "state", AppName, AppName+".log"), cfg.Logging.File)
	assert.Equal(t, filepath.Join(root, "watch_history.json"), cfg.HistoryPath)
	assert.Nil(t, cfg.DefaultFilters.MinDuration)
	assert.Nil(t, cfg.DefaultFilters.MaxDuration)
}

func TestLoad_JSONWithComments(t *testing.T) {
	root := setupDirs(t)
	path := writeConfig(t, root, `{
  // credentials
  "api_key": "abc//def", // trailing comment
  "hide_watched": true,
  "max_results": 25,
  "default_filters": {
    "channel": "Fireship",
    "min_duration": 60,
    "max_duration": 600,
    "after_date": "2024-01-01T00:00:00Z"
  },
  "api": {"timeout": "5s"},
  "player": {"command": "vlc", "args": ["--fullscreen"]}
}`)

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc//def", cfg.APIKey)
	assert.True(t, cfg.HideWatched)
	assert.Equal(t, 25, cfg.MaxResults)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "vlc", cfg.Player.Command)
	assert.Equal(t, []string{"--fullscreen"}, cfg.Player.Args)

	require.NotNil(t, cfg.DefaultFilters.MinDuration)
	require.NotNil(t, cfg.DefaultFilters.MaxDuration)
	assert.Equal(t, uint64(60), *cfg.DefaultFilters.MinDuration)
	assert.Equal(t, uint64(600), *cfg.DefaultFilters.MaxDuration)

	criteria := cfg.DefaultFilters.Criteria()
	assert.Equal(t, "Fireship", criteria.Creator)
	assert.Equal(t, time.Minute, *criteria.MinDuration)
	assert.Equal(t, 10*time.Minute, *criteria.MaxDuration)
	_, ok := criteria.After()
	assert.True(t, ok)
}

func TestLoad_EnvOverrides(t *testing.T) {
	root := setupDirs(t)
	path := writeConfig(t, root, `{"api_key": "from-file"}`)

	t.Setenv("YT_TUI_API_KEY", "from-env")
	t.Setenv("YT_TUI_LOGGING_LEVEL", "debug")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidJSON(t *testing.T) {
	root := setupDirs(t)
	path := writeConfig(t, root, `{"api_key": }`)

	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_AbsoluteHistoryPathKept(t *testing.T) {
	root := setupDirs(t)
	abs := filepath.Join(root, "elsewhere", "history.json")
	path := writeConfig(t, root, `{"history_path": "`+filepath.ToSlash(abs)+`"}`)

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(cfg.HistoryPath))
}

func TestSaveDefaultConfig_LoadsBackToDefaults(t *testing.T) {
	root := setupDirs(t)
	path := filepath.Join(root, "nested", "config.jsonc")

	require.NoError(t, SaveDefaultConfig(path))

	fromFile, _, err := Load(path)
	require.NoError(t, err)
	defaults, _, err := Load(filepath.Join(root, "nested", "missing.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, defaults.MaxResults, fromFile.MaxResults)
	assert.Equal(t, defaults.API, fromFile.API)
	assert.Equal(t, defaults.Player.YTDLFormat, fromFile.Player.YTDLFormat)
	assert.Equal(t, defaults.Logging.Level, fromFile.Logging.Level)
	assert.Equal(t, defaults.HistoryPath, fromFile.HistoryPath)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			MaxResults: 50,
			API:        APIConfig{Timeout: time.Second},
			Database:   DatabaseConfig{MaxConnections: 1},
		}
	}
	one, two := uint64(1), uint64(2)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero results", func(c *Config) { c.MaxResults = 0 }, true},
		{"too many results", func(c *Config) { c.MaxResults = 51 }, true},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, true},
		{"no connections", func(c *Config) { c.Database.MaxConnections = 0 }, true},
		{"min above max", func(c *Config) {
			c.DefaultFilters.MinDuration = &two
			c.DefaultFilters.MaxDuration = &one
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHasCredentials(t *testing.T) {
	assert.False(t, (&Config{}).HasCredentials())
	assert.True(t, (&Config{APIKey: "k"}).HasCredentials())
	assert.True(t, (&Config{OAuthRefreshToken: "r"}).HasCredentials())
}

func TestInitializeDirs(t *testing.T) {
	root := setupDirs(t)
	require.NoError(t, InitializeDirs())

	for _, dir := range []string{
		filepath.Join(root, "config", AppName),
		filepath.Join(root, "data", AppName),
		filepath.Join(root, "state", AppName),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, filepath.Join(root, "config", AppName, ConfigFileName), DefaultConfigPath())
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no comments", `{"a": 1}`, `{"a": 1}`},
		{"full line", "// hi\n{\"a\": 1}", "\n{\"a\": 1}"},
		{"trailing", "{\"a\": 1} // hi\n", "{\"a\": 1} \n"},
		{"slashes in string", `{"url": "http://x"}`, `{"url": "http://x"}`},
		{"escaped quote in string", `{"a": "q\"//x"} // c`, `{"a": "q\"//x"} `},
		{"single slash kept", `{"a": "1/2"}`, `{"a": "1/2"}`},
		{"comment at eof", `{} //`, `{} `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(StripComments([]byte(tt.input))))
		})
	}
}
