package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

const (
	DefaultConfigPath = "~/.tasklist.toml"
	DefaultStorePath  = "~/.tasklist"
	EnvPrefix         = "TASKLIST"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	StorePath     string `mapstructure:"store_path" toml:"store_path"`
	Backend       string `mapstructure:"backend" toml:"backend"`
	LogPath       string `mapstructure:"log_path" toml:"log_path"`
	DefaultFilter string `mapstructure:"default_filter" toml:"default_filter"`
	DefaultIcon   string `mapstructure:"default_icon" toml:"default_icon"`
	ConfirmDelete bool   `mapstructure:"confirm_delete" toml:"confirm_delete"`
}

func Default() Config {
	return Config{
		StorePath:     DefaultStorePath,
		Backend:       storage.BackendDiskv,
		LogPath:       "",
		DefaultFilter: string(model.FilterAll),
		DefaultIcon:   model.DefaultIcon,
		ConfirmDelete: true,
	}
}

// Load merges defaults, the TOML file at path (if it exists) and TASKLIST_*
// environment variables, in that order. An empty path means DefaultConfigPath.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath
	}
	resolved, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: expand %s: %w", path, err)
	}

	v := viper.New()
	def := Default()
	v.SetDefault("store_path", def.StorePath)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("log_path", def.LogPath)
	v.SetDefault("default_filter", def.DefaultFilter)
	v.SetDefault("default_icon", def.DefaultIcon)
	v.SetDefault("confirm_delete", def.ConfirmDelete)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if _, statErr := os.Stat(resolved); statErr == nil {
		v.SetConfigFile(resolved)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", resolved, err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: stat %s: %w", resolved, statErr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.DefaultFilter = strings.ToLower(strings.TrimSpace(cfg.DefaultFilter))
	if cfg.StorePath, err = homedir.Expand(strings.TrimSpace(cfg.StorePath)); err != nil {
		return Config{}, fmt.Errorf("config: expand store_path: %w", err)
	}
	if cfg.LogPath, err = homedir.Expand(strings.TrimSpace(cfg.LogPath)); err != nil {
		return Config{}, fmt.Errorf("config: expand log_path: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("%w: store_path is required", ErrInvalidConfig)
	}
	switch c.Backend {
	case storage.BackendDiskv, storage.BackendSQLite:
	default:
		return fmt.Errorf("%w: backend %q", ErrInvalidConfig, c.Backend)
	}
	if !model.StatusFilter(c.DefaultFilter).IsValid() {
		return fmt.Errorf("%w: default_filter %q", ErrInvalidConfig, c.DefaultFilter)
	}
	if !model.IsKnownIcon(c.DefaultIcon) {
		return fmt.Errorf("%w: default_icon %q", ErrInvalidConfig, c.DefaultIcon)
	}
	return nil
}

// StoreLocation is the path handed to the storage backend. The sqlite backend
// keeps a single database file inside the store directory.
func (c Config) StoreLocation() string {
	if c.Backend == storage.BackendSQLite {
		return filepath.Join(c.StorePath, "tasklist.db")
	}
	return c.StorePath
}

// WriteDefault writes the default config as TOML. Existing files are kept
// unless force is set.
func WriteDefault(path string, force bool) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath
	}
	resolved, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config: expand %s: %w", path, err)
	}
	if _, err := os.Stat(resolved); err == nil && !force {
		return resolved, fmt.Errorf("config: %s already exists", resolved)
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("config: encode: %w", err)
	}
	if dir := filepath.Dir(resolved); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	return resolved, os.WriteFile(resolved, data, 0o644)
}
