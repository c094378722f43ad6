package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      string `mapstructure:"app"`
	LogLevel string `mapstructure:"log_level"`
	Lyrics   string `mapstructure:"lyrics"`
	Provider struct {
		Binary  string        `mapstructure:"binary"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"provider"`
}

const (
	defaultApp      = "Spotify"
	defaultLogLevel = "info"
)

// configError describes one invalid config field
type configError struct {
	field   string
	message string
}

func (e configError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("lyricbar", pflag.ContinueOnError)
	fs.StringP("app", "a", defaultApp, "Application to query (e.g. Spotify, Music)")
	fs.StringP("lyrics", "l", "", "LRC file to locate the current line in")
	fs.StringP("config", "c", "", "Config file (default $XDG_CONFIG_HOME/lyricbar/config.yaml)")
	fs.String("log-level", defaultLogLevel, "Log level: debug, info, warn or error")
	fs.String("bridge", "", "Scripting bridge binary (default osascript on macOS, playerctl on Linux)")
	fs.Duration("timeout", 0, "Timeout for the scripting bridge call (0 waits forever)")
	return fs
}

// loadConfig merges defaults, the config file, LYRICBAR_* environment
// variables and flags, in increasing precedence.
func loadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("app", defaultApp)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("lyrics", "")
	v.SetDefault("provider.binary", "")
	v.SetDefault("provider.timeout", "0s")

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check XDG_CONFIG_HOME first, fallback to ~/.config
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				configHome = filepath.Join(homeDir, ".config")
			}
		}
		if configHome != "" {
			v.AddConfigPath(filepath.Join(configHome, "lyricbar"))
		}
	}

	v.SetEnvPrefix("LYRICBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	bindings := map[string]string{
		"app":              "app",
		"lyrics":           "lyrics",
		"log_level":        "log-level",
		"provider.binary":  "bridge",
		"provider.timeout": "timeout",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// validateConfig returns one error per invalid field
func validateConfig(cfg *Config) []error {
	var errs []error

	if strings.TrimSpace(cfg.App) == "" {
		errs = append(errs, configError{field: "app", message: "must not be empty"})
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		errs = append(errs, configError{field: "log_level", message: fmt.Sprintf("invalid level '%s'", cfg.LogLevel)})
	}

	if cfg.Provider.Timeout < 0 {
		errs = append(errs, configError{field: "provider.timeout", message: fmt.Sprintf("must not be negative (got %s)", cfg.Provider.Timeout)})
	}

	return errs
}

// applyDefaultsForInvalidFields resets every field named in errs
func applyDefaultsForInvalidFields(cfg *Config, errs []error) {
	for _, err := range errs {
		var ce configError
		if !errors.As(err, &ce) {
			continue
		}
		switch ce.field {
		case "app":
			cfg.App = defaultApp
		case "log_level":
			cfg.LogLevel = defaultLogLevel
		case "provider.timeout":
			cfg.Provider.Timeout = 0
		}
	}
}

func printConfigWarnings(logger *slog.Logger, errs []error) {
	for _, err := range errs {
		logger.Warn("invalid config value, using default", "err", err)
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
