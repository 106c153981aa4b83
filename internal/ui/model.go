// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the interactive Bubble Tea front end of the shell: a
// command prompt above a scrollback of command output.
package ui

import (
	"command-dispatcher/internal/shell"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	session *shell.Session
	keymap  KeyMap

	input    textinput.Model
	viewport viewport.Model
	help     help.Model

	lines      []string // scrollback, already styled
	history    []string // submitted lines, oldest first
	historyPos int      // index into history while browsing; len(history) when not

	currentState state
	status       string
	lastError    error

	width  int
	height int
	ready  bool
}

// InitialModel returns a model driving session.
func InitialModel(session *shell.Session) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(session.Config().Prompt)
	ti.Placeholder = "help"
	ti.Focus()

	m := model{
		session:      session,
		keymap:       DefaultKeyMap,
		input:        ti,
		help:         help.New(),
		currentState: stateInput,
	}
	m.appendLines(statusStyle.Render(`Type "help" to view list of commands.`))
	return m
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, handleWindowSizeMsg(m, msg)
	case commandFinishedMsg:
		return m, handleCommandFinishedMsg(m, msg)
	case lineErrorMsg:
		return m, handleLineErrorMsg(m, msg)
	case tea.KeyMsg:
		return m, m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	return m.render()
}
