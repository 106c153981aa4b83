// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"os"

	"command-dispatcher/cmd/tui"
	"command-dispatcher/internal/config"
	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/shell"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfg     config.Config
	session *shell.Session

	configPath string
	logLevel   string

	statusColor     = color.New(color.FgCyan)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

var rootCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Command dispatcher shell",
	Long: `A small command shell that dispatches named commands with JSON or YAML
payloads against an in-memory list of employees.

Without a subcommand it starts the interactive TUI when attached to a
terminal and otherwise reads "<command> [payload]" lines from stdin until
exit succeeds or input ends.

Configuration is read from ~/.config/command-dispatcher/config.yaml.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadConfigFrom(configPath)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		logger.InitLogger(logger.Options{
			Interactive: isInteractive(cmd),
			Level:       cfg.LogLevel,
		})

		session, err = shell.NewSession(cfg, os.Stdout)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if stdinIsTerminal() {
			return tui.RunTUI(session)
		}
		return session.RunLoop(os.Stdin)
	},
}

// RunCLI executes the command tree and exits non-zero on failure.
func RunCLI() {
	if err := rootCmd.Execute(); err != nil {
		var exit exitError
		if !errors.As(err, &exit) {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// exitError signals a failure that has already been reported to the user.
type exitError struct{ err error }

func (e exitError) Error() string { return e.err.Error() }
func (e exitError) Unwrap() error { return e.err }

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// isInteractive reports whether cmd owns the terminal, in which case log
// lines must stay out of stderr.
func isInteractive(cmd *cobra.Command) bool {
	if !cmd.HasParent() {
		return stdinIsTerminal()
	}
	return cmd.Name() == "repl"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
