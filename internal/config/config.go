// Package config resolves runtime configuration for the queryforge CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the resolved CLI settings.
type Config struct {
	// TemplatesDir is an optional directory of user-defined YAML templates
	// loaded alongside the builtins.
	TemplatesDir string
	// HistoryPath is the SQLite file backing the execution log.
	HistoryPath string
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string
}

// Load resolves configuration from an optional config file, QUERYFORGE_*
// environment variables, and defaults, in decreasing precedence of
// env > file > default.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("templates_dir", "")
	v.SetDefault("history_path", defaultHistoryPath())
	v.SetDefault("log_level", "warn")

	v.SetEnvPrefix("QUERYFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("queryforge")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			v.AddConfigPath(filepath.Join(home, ".config", "queryforge"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return &Config{
		TemplatesDir: v.GetString("templates_dir"),
		HistoryPath:  v.GetString("history_path"),
		LogLevel:     v.GetString("log_level"),
	}, nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "queryforge-history.db"
	}
	return filepath.Join(home, ".local", "share", "queryforge", "history.db")
}
