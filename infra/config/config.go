package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TERMINALCATCHUP_INSTANCE.
const EnvPrefix = "TERMINALCATCHUP"

// Config holds application-level configuration.
type Config struct {
	InstanceURL    string        `mapstructure:"instance"`   // e.g. "https://mastodon.social"
	TokenPath      string        `mapstructure:"token_path"` // File holding the access token
	Token          string        `mapstructure:"token"`      // Inline token, wins over TokenPath
	DBPath         string        `mapstructure:"db_path"`
	LogLevel       string        `mapstructure:"log_level"`
	LogPath        string        `mapstructure:"log_path"`
	PageSize       int           `mapstructure:"page_size"`
	PageDelay      time.Duration `mapstructure:"page_delay"`
	KeepSessions   int           `mapstructure:"keep_sessions"`
	IncludeReblogs bool          `mapstructure:"include_reblogs"`
	UIStatePath    string        `mapstructure:"ui_state_path"`
}

// Dir returns the configuration directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, "terminalcatchup"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "terminalcatchup"), nil
}

// Load reads configuration from an optional .env file, an optional
// config.yaml and TERMINALCATCHUP_* environment variables, in increasing
// order of precedence.
//
//	instance        Mastodon instance URL, https only (default: https://mastodon.social)
//	token_path      Path to token file (default: <config dir>/token)
//	db_path         SQLite database (default: <config dir>/catchup.db)
//	log_level       zerolog level (default: info)
//	log_path        Log file used while the TUI runs (default: <config dir>/terminalcatchup.log)
//	page_size       Posts per timeline page (default: 40)
//	page_delay      Pause between pages (default: 1s)
//	keep_sessions   Catch-ups kept per account (default: 3)
//	include_reblogs Send include_reblogs=true, for Pixelfed (default: false)
func Load() (Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	v.SetDefault("instance", "https://mastodon.social")
	v.SetDefault("token_path", filepath.Join(dir, "token"))
	v.SetDefault("token", "")
	v.SetDefault("db_path", filepath.Join(dir, "catchup.db"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_path", filepath.Join(dir, "terminalcatchup.log"))
	v.SetDefault("page_size", 40)
	v.SetDefault("page_delay", "1s")
	v.SetDefault("keep_sessions", 3)
	v.SetDefault("include_reblogs", false)
	v.SetDefault("ui_state_path", filepath.Join(dir, "ui_state.json"))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	instance, err := normalizeInstance(cfg.InstanceURL)
	if err != nil {
		return Config{}, err
	}
	cfg.InstanceURL = instance

	if cfg.PageSize <= 0 {
		return Config{}, fmt.Errorf("invalid page_size %d: must be positive", cfg.PageSize)
	}
	if cfg.PageDelay < 0 {
		return Config{}, fmt.Errorf("invalid page_delay %s: must not be negative", cfg.PageDelay)
	}
	if cfg.KeepSessions <= 0 {
		return Config{}, fmt.Errorf("invalid keep_sessions %d: must be positive", cfg.KeepSessions)
	}
	return cfg, nil
}

func normalizeInstance(instance string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(instance))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid instance: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid instance: only https is allowed")
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

// ViewState is the last selection of the catch-up browser.
type ViewState struct {
	Hours     int    `json:"hours,omitempty"`
	SinceLast bool   `json:"sinceLast,omitempty"`
	Category  string `json:"category,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
	GroupBy   string `json:"groupBy,omitempty"`
}

// LoadViewState reads the view state. A missing file yields the zero state.
func LoadViewState(path string) (ViewState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ViewState{}, nil
		}
		return ViewState{}, fmt.Errorf("reading view state: %w", err)
	}
	var st ViewState
	if err := json.Unmarshal(data, &st); err != nil {
		return ViewState{}, fmt.Errorf("parsing view state: %w", err)
	}
	return st, nil
}

// SaveViewState writes the view state, creating its directory if needed.
func SaveViewState(path string, st ViewState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing view state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing view state: %w", err)
	}
	return nil
}
