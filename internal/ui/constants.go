// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different modes of the TUI.
type state int

const (
	stateInput state = iota
	stateRunningCommand
	stateExited
)

const (
	headerHeight  = 1    // Height reserved for the title line.
	footerHeight  = 3    // Prompt line, status line and key help.
	maxScrollback = 2000 // Oldest output lines are dropped beyond this.
	maxHistory    = 100  // Remembered input lines.
)
