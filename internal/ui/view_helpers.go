// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// --- View Helpers ---

func (m *model) render() string {
	if !m.ready {
		return "Initializing..."
	}

	header := titleStyle.Render("Command Dispatcher")
	body := mainContentBorderStyle.Render(m.viewport.View())

	var footer strings.Builder
	if m.currentState == stateExited {
		footer.WriteString(statusStyle.Render("Session ended."))
	} else {
		footer.WriteString(m.input.View())
	}
	footer.WriteString("\n")
	footer.WriteString(m.statusLine())
	footer.WriteString("\n")
	footer.WriteString(m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer.String())
}

func (m *model) statusLine() string {
	count := footerStyle.Render(fmt.Sprintf("%d employees", m.session.Store().Len()))
	if m.status == "" {
		return count
	}
	return m.status + footerStyle.Render(" | ") + count
}
