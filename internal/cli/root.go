// Package cli implements the queryforge command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/graphfoundry/queryforge/internal/catalog"
	"github.com/graphfoundry/queryforge/internal/config"
	"github.com/graphfoundry/queryforge/internal/registry"
	"github.com/graphfoundry/queryforge/internal/template"
)

var (
	flagConfigFile   string
	flagTemplatesDir string
	flagLogLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "queryforge",
	Short: "Typed, validated graph query templates",
	Long: "Queryforge renders graph query text from named templates with typed,\n" +
		"validated parameters. It never talks to a database; it only produces\n" +
		"query strings for other tools to run.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagTemplatesDir, "templates-dir", "", "directory of user-defined YAML templates")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the CLI and returns a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// setup resolves configuration, builds the logger, and assembles the
// registry with builtins plus any user-defined templates.
func setup() (*config.Config, zerolog.Logger, *registry.Registry, error) {
	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	if flagTemplatesDir != "" {
		cfg.TemplatesDir = flagTemplatesDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	reg := registry.New()
	if err := catalog.Register(reg); err != nil {
		return nil, logger, nil, fmt.Errorf("register builtin templates: %w", err)
	}

	if cfg.TemplatesDir != "" {
		userTemplates, err := template.LoadDir(cfg.TemplatesDir, logger)
		if err != nil {
			return nil, logger, nil, err
		}
		for _, t := range userTemplates {
			if err := reg.Register(t); err != nil {
				logger.Warn().Err(err).Str("template", t.Name()).
					Msg("skipping user template shadowing an existing name")
			}
		}
	}

	return cfg, logger, reg, nil
}

// isInteractive reports whether stdout is a terminal; non-interactive
// output skips hints meant for humans.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
