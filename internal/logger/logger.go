// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package logger wraps a process-wide slog logger. Output goes to a JSON log
// file under the XDG state directory and, outside the TUI, to stderr.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TODO: Consider log rotation

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// Options controls where and how much is logged.
type Options struct {
	// Interactive disables stderr output so log lines do not corrupt a TUI.
	Interactive bool
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// DisableFile skips the log file entirely.
	DisableFile bool
}

// LogFilePath determines the path for the application log file based on XDG spec.
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "command-dispatcher", "app.log"), nil
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func openLogFile() (*os.File, error) {
	logFilePath, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	// 0750: user rwx, group rx, others ---
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
	}
	return file, nil
}

// InitLogger configures the process logger. It should be called once at
// startup, before any command runs.
func InitLogger(opts Options) {
	level, levelErr := ParseLevel(opts.Level)

	var writers []io.Writer
	if !opts.DisableFile {
		file, err := openLogFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error setting up log file: %v. File logging disabled.\n", err)
		} else {
			// Closed by the OS on exit.
			writers = append(writers, file)
		}
	}
	if !opts.Interactive {
		writers = append(writers, os.Stderr)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	SetLogger(slog.New(handler))

	if levelErr != nil {
		Warn("Falling back to info level.", "error", levelErr)
	}
}

// SetLogger replaces the process logger. Tests use it to silence output.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// current returns the configured logger. Before InitLogger only warnings and
// errors reach stderr, so library use stays quiet.
func current() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Infof logs a formatted informational message.
func Infof(format string, v ...any) {
	current().Info(fmt.Sprintf(format, v...))
}

// Error logs an error message.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...any) {
	current().Error(fmt.Sprintf(format, v...))
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, v ...any) {
	current().Warn(fmt.Sprintf(format, v...))
}
