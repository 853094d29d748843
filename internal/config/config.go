// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "shoal"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"

	// DefaultSearchVariable is the environment variable holding the
	// autoload search path.
	DefaultSearchVariable = "SHOAL_FUNCTION_PATH"
	// DefaultCacheCapacity bounds the autoload cache.
	DefaultCacheCapacity = 1024
	// DefaultStalenessSeconds is the minimum time between re-validating a
	// cached resolution against the filesystem.
	DefaultStalenessSeconds = 1
	// DefaultFileSuffix is appended to a command name when probing the
	// search path for its script file.
	DefaultFileSuffix = ".fish"
)

// Config holds the effective shoal configuration.
type Config struct {
	// SearchVariable names the environment variable whose value is the
	// ordered list of directories to search for autoloadable scripts.
	SearchVariable string `mapstructure:"search_variable"`
	// CacheCapacity is the maximum number of resolution records kept.
	CacheCapacity int `mapstructure:"cache_capacity"`
	// StalenessSeconds is the staleness interval in whole seconds.
	StalenessSeconds int `mapstructure:"staleness_seconds"`
	// FileSuffix is the script file suffix, including the leading dot.
	FileSuffix string `mapstructure:"file_suffix"`
	// Verbose enables verbose diagnostics.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		SearchVariable:   DefaultSearchVariable,
		CacheCapacity:    DefaultCacheCapacity,
		StalenessSeconds: DefaultStalenessSeconds,
		FileSuffix:       DefaultFileSuffix,
	}
}

// StalenessInterval returns the staleness interval as a duration.
func (c *Config) StalenessInterval() time.Duration {
	return time.Duration(c.StalenessSeconds) * time.Second
}

// Validate checks constraints the CUE schema cannot express for values that
// bypassed schema validation (defaults, programmatic construction).
func (c *Config) Validate() error {
	if c.SearchVariable == "" {
		return fmt.Errorf("config: search_variable must not be empty")
	}
	if c.CacheCapacity < 1 {
		return fmt.Errorf("config: cache_capacity must be at least 1, got %d", c.CacheCapacity)
	}
	if c.StalenessSeconds < 0 {
		return fmt.Errorf("config: staleness_seconds must not be negative, got %d", c.StalenessSeconds)
	}
	if !strings.HasPrefix(c.FileSuffix, ".") {
		return fmt.Errorf("config: file_suffix must start with a dot, got %q", c.FileSuffix)
	}
	return nil
}

// ConfigDir returns the shoal configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// LoadOptions control where Load looks for the config file.
type LoadOptions struct {
	// ConfigFilePath, when set, is used exclusively; the file must exist.
	ConfigFilePath string
	// ConfigDirPath overrides the platform config directory (tests).
	ConfigDirPath string
}

// Load reads the configuration, returning the effective Config and the path
// of the file it came from ("" when running on defaults alone).
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("search_variable", defaults.SearchVariable)
	v.SetDefault("cache_capacity", defaults.CacheCapacity)
	v.SetDefault("staleness_seconds", defaults.StalenessSeconds)
	v.SetDefault("file_suffix", defaults.FileSuffix)
	v.SetDefault("verbose", defaults.Verbose)

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", fmt.Errorf("load configuration: %w", err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", fmt.Errorf("load configuration: %w", err)
			}
			resolvedPath = cuePath
		}
		// No config file found: run on defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
