package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	defaultBaseRef       = "HEAD"
	defaultContextLines  = 3
	defaultFilePaneWidth = 40
	defaultCommitLimit   = 100
	defaultLogLevel      = "warn"
)

type Config struct {
	// BaseRef is what the worktree is diffed against on startup.
	BaseRef       string `mapstructure:"base_ref"`
	ContextLines  int    `mapstructure:"context_lines"`
	FilePaneWidth int    `mapstructure:"file_pane_width"`
	CommitLimit   int    `mapstructure:"commit_limit"`
	LogLevel      string `mapstructure:"log_level"`
	LogFile       string `mapstructure:"log_file"`
	// SoftFocusScroll makes a soft-focused row scroll into view instead of
	// only highlighting where it already is.
	SoftFocusScroll bool `mapstructure:"soft_focus_scroll"`
}

func defaultConfig() *Config {
	return &Config{
		BaseRef:       defaultBaseRef,
		ContextLines:  defaultContextLines,
		FilePaneWidth: defaultFilePaneWidth,
		CommitLimit:   defaultCommitLimit,
		LogLevel:      defaultLogLevel,
	}
}

// Load reads the config from the first prview config file found under the
// XDG config paths, falling back to defaults when none exists.
func Load() (*Config, error) {
	v := newViper()
	v.AddConfigPath(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "prview"))
	v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "prview"))
	return load(v)
}

// LoadFromPath reads the config from an explicit file.
func LoadFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	return load(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("base_ref", defaultBaseRef)
	v.SetDefault("context_lines", defaultContextLines)
	v.SetDefault("file_pane_width", defaultFilePaneWidth)
	v.SetDefault("commit_limit", defaultCommitLimit)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("soft_focus_scroll", false)
	return v
}

func load(v *viper.Viper) (*Config, error) {
	cfg := defaultConfig()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
