package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	ModuleRoot     string      `mapstructure:"module_root"`
	PrimaryExt     string      `mapstructure:"primary_ext"`
	PrecompiledExt string      `mapstructure:"precompiled_ext"`
	StrictCycles   bool        `mapstructure:"strict_cycles"`
	LogLevel       string      `mapstructure:"log_level"`
	Watch          WatchConfig `mapstructure:"watch"`
}

// WatchConfig holds settings for the watch command
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Port     int           `mapstructure:"port"`
}

const (
	configName = ".lessbundle"
	envPrefix  = "LESSBUNDLE"
)

// Load reads configuration from path, or when path is empty from .lessbundle.yaml
// in the working directory or ~/.config/lessbundle. A missing file leaves the
// defaults in place; a malformed one is an error. Environment variables prefixed
// with LESSBUNDLE_ override file values.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("module_root", "")
	v.SetDefault("primary_ext", ".less")
	v.SetDefault("precompiled_ext", ".css")
	v.SetDefault("strict_cycles", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("watch.debounce", 300*time.Millisecond)
	v.SetDefault("watch.port", 0)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "lessbundle"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// AutomaticEnv only sees keys viper already knows; nested keys need explicit binds.
	_ = v.BindEnv("watch.debounce", envPrefix+"_WATCH_DEBOUNCE")
	_ = v.BindEnv("watch.port", envPrefix+"_WATCH_PORT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	c.ModuleRoot = expandTilde(c.ModuleRoot)
	return c, nil
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
