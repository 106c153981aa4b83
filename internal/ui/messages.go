// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui's messages.go file defines the message types used in the Bubble Tea
// Model-View-Update loop.

package ui

import "command-dispatcher/internal/shell"

// commandFinishedMsg carries the outcome of one typed line.
type commandFinishedMsg struct {
	line   string
	result shell.Result
}

// lineErrorMsg is sent when the typed line could not be parsed.
type lineErrorMsg struct {
	line string
	err  error
}
