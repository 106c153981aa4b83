// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"command-dispatcher/internal/shell"

	tea "github.com/charmbracelet/bubbletea"
)

// runLineCmd parses and dispatches one line of input off the UI goroutine.
func runLineCmd(session *shell.Session, line string) tea.Cmd {
	return func() tea.Msg {
		name, p, err := session.ParseLine(line)
		if err != nil {
			return lineErrorMsg{line: line, err: err}
		}
		return commandFinishedMsg{line: line, result: session.Capture(name, p)}
	}
}
