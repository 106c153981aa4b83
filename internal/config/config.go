// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration: reading and writing the
// YAML config file and supplying the preset payloads used when a command is
// typed without one.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"command-dispatcher/internal/payload"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level application configuration
type Config struct {
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty"`

	// Prompt is the text shown before user input in interactive drivers
	Prompt string `yaml:"prompt,omitempty"`

	// ListenAddr is the address the HTTP API binds to
	ListenAddr string `yaml:"listen_addr,omitempty"`

	// Presets maps a command name to the payload used when none is typed
	Presets map[string]payload.Value `yaml:"presets,omitempty"`
}

const (
	DefaultPrompt     = "enter command : "
	DefaultListenAddr = ":8080"
)

// defaultPresets are the demonstration payloads shipped with the shell.
const defaultPresets = `
help:
  - {command: help, description: Print this Help.}
  - {command: exit, description: Exit this program.}
  - {command: add, description: Add employees from JSON to data container.}
  - {command: remove, description: Remove employee by specific ID given by JSON.}
  - {command: print, description: Print list of employees.}
exit:
  reason: Exiting program on user request.
add:
  - {name: Peter, position: C++ Developer}
  - {name: Ivan, position: Java Developer}
  - {name: Michal, position: UI Designer}
print: "Printing list of employees:"
remove: 3
`

// Default returns the configuration used when no file exists.
func Default() Config {
	presets := map[string]payload.Value{}
	if err := yaml.Unmarshal([]byte(defaultPresets), &presets); err != nil {
		panic(fmt.Sprintf("invalid built-in presets: %v", err))
	}
	return Config{
		LogLevel:   "info",
		Prompt:     DefaultPrompt,
		ListenAddr: DefaultListenAddr,
		Presets:    presets,
	}
}

// Preset returns the configured payload for command.
func (c Config) Preset(command string) (payload.Value, bool) {
	p, ok := c.Presets[command]
	if !ok || p.IsAbsent() {
		return payload.Value{}, false
	}
	return p, true
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "command-dispatcher", "config.yaml"), nil
}

// LoadConfig reads the config file at its default location.
func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom reads configPath and layers it over Default. A missing file is
// not an error. Presets from the file replace the built-in preset of the same
// command only.
func LoadConfigFrom(configPath string) (Config, error) {
	cfg := Default()

	resolved, err := ResolvePath(configPath)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", resolved, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", resolved, err)
	}

	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Prompt != "" {
		cfg.Prompt = fileCfg.Prompt
	}
	if fileCfg.ListenAddr != "" {
		cfg.ListenAddr = fileCfg.ListenAddr
	}
	maps.Copy(cfg.Presets, fileCfg.Presets)

	return cfg, nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

// SaveConfig writes cfg to the default location.
func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	return SaveConfigTo(cfg, configPath)
}

// SaveConfigTo writes cfg as YAML to configPath.
func SaveConfigTo(cfg Config, configPath string) error {
	resolved, err := ResolvePath(configPath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw-r----- (0640)
	err = os.WriteFile(resolved, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", resolved, err)
	}

	return nil
}

func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
