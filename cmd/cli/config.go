// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"command-dispatcher/internal/config"
	"command-dispatcher/internal/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage command-dispatcher configuration",
	Long: `Provides subcommands to create and inspect the configuration file holding
the log level, prompt, API listen address and preset payloads.`,
	// Config subcommands must work even when the file on disk is broken.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.InitLogger(logger.Options{Level: logLevel})
		return nil
	},
}

var forceInit bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := targetConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			errorColor.Fprintf(os.Stderr, "Config file already exists at %s (use --force to overwrite).\n", path)
			return exitError{os.ErrExist}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := config.SaveConfigTo(config.Default(), path); err != nil {
			return err
		}
		successColor.Printf("Wrote default configuration to %s\n", identifierColor.Sprint(path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Prints the configuration after the file has been layered over the defaults.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := targetConfigPath()
		if err != nil {
			return err
		}
		effective, err := config.LoadConfigFrom(path)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(effective)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		dimColor.Printf("# %s\n", path)
		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := targetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

// targetConfigPath returns --config when given, else the default location.
func targetConfigPath() (string, error) {
	if configPath != "" {
		return config.ResolvePath(configPath)
	}
	return config.DefaultConfigPath()
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
