// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Update Handlers ---

func (m *model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keymap.Quit) {
		return tea.Quit
	}
	if m.currentState != stateInput {
		return nil
	}

	switch {
	case key.Matches(msg, m.keymap.Enter):
		line := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		if line == "" {
			return nil
		}
		m.remember(line)
		m.currentState = stateRunningCommand
		m.status = "running " + line
		return runLineCmd(m.session, line)
	case key.Matches(msg, m.keymap.Complete):
		m.complete()
		return nil
	case key.Matches(msg, m.keymap.Prev):
		m.browseHistory(-1)
		return nil
	case key.Matches(msg, m.keymap.Next):
		m.browseHistory(1)
		return nil
	case key.Matches(msg, m.keymap.PgUp):
		m.viewport.ViewUp()
		return nil
	case key.Matches(msg, m.keymap.PgDown):
		m.viewport.ViewDown()
		return nil
	case key.Matches(msg, m.keymap.Clear):
		m.lines = nil
		m.refreshViewport()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// complete expands the command name being typed. Only the first word is
// completed; payload text is left alone.
func (m *model) complete() {
	value := m.input.Value()
	if strings.ContainsAny(value, " \t") {
		return
	}

	var matches []string
	for _, name := range m.session.Commands() {
		if strings.HasPrefix(name, value) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		m.status = errorStyle.Render("no command matches " + value)
	case 1:
		m.input.SetValue(matches[0] + " ")
		m.input.CursorEnd()
		m.status = ""
	default:
		m.status = strings.Join(matches, "  ")
	}
}

func (m *model) remember(line string) {
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.historyPos = len(m.history)
}

func (m *model) browseHistory(delta int) {
	if len(m.history) == 0 {
		return
	}
	pos := m.historyPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.history) {
		m.historyPos = len(m.history)
		m.input.SetValue("")
		return
	}
	m.historyPos = pos
	m.input.SetValue(m.history[pos])
	m.input.CursorEnd()
}

func (m *model) appendLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	if len(m.lines) > maxScrollback {
		m.lines = m.lines[len(m.lines)-maxScrollback:]
	}
	m.refreshViewport()
}

func (m *model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}
