// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"fmt"

	"command-dispatcher/internal/shell"
	"command-dispatcher/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI runs the Bubble Tea interface on session until exit succeeds or the
// user quits.
func RunTUI(session *shell.Session) error {
	m := ui.InitialModel(session)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
