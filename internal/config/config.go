package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Board    BoardConfig
	Ballot   BallotConfig
	Log      LogConfig
	Keys     []KeyBinding
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// BoardConfig holds presentation and drag settings.
type BoardConfig struct {
	Week         int
	Timezone     string
	HeaderSticky bool `mapstructure:"header_sticky"`
	CancelOnBlur bool `mapstructure:"cancel_on_blur"`
}

// BallotConfig says where submitted ballots go. "-" means stdout after exit.
type BallotConfig struct {
	Path string
}

// LogConfig holds logger settings. An empty path disables logging.
type LogConfig struct {
	Path        string
	Level       string
	Development bool
}

// KeyBinding overrides the keys of one action in one scope.
type KeyBinding struct {
	Scope  string
	Action string
	Keys   []string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "pickboard")
}

func configPath() string {
	if p := os.Getenv("PICKBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "pickboard", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix PICKBOARD_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "pickboard.db"))
	v.SetDefault("board.week", 1)
	v.SetDefault("board.timezone", "America/New_York")
	v.SetDefault("board.header_sticky", false)
	v.SetDefault("board.cancel_on_blur", true)
	v.SetDefault("ballot.path", "-")
	v.SetDefault("log.path", filepath.Join(dataDir(), "pickboard.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetConfigType("toml")
	v.SetConfigFile(configPath())

	v.SetEnvPrefix("PICKBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Board.Week < 1 {
		return Config{}, fmt.Errorf("board.week must be >= 1, got %d", c.Board.Week)
	}
	return c, nil
}

// A missing config file is fine; a malformed one is not.
func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("board.week", cfg.Board.Week)
	v.Set("board.timezone", cfg.Board.Timezone)
	v.Set("board.header_sticky", cfg.Board.HeaderSticky)
	v.Set("board.cancel_on_blur", cfg.Board.CancelOnBlur)
	v.Set("ballot.path", cfg.Ballot.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.development", cfg.Log.Development)
	if len(cfg.Keys) > 0 {
		keys := make([]map[string]any, 0, len(cfg.Keys))
		for _, k := range cfg.Keys {
			keys = append(keys, map[string]any{"scope": k.Scope, "action": k.Action, "keys": k.Keys})
		}
		v.Set("keys", keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
