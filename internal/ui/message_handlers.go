// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Message Handlers ---
// These functions handle specific message types received by the model's Update function.

func handleWindowSizeMsg(m *model, msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	vpHeight := m.height - headerHeight - footerHeight - mainContentBorderStyle.GetVerticalFrameSize()
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width - mainContentBorderStyle.GetHorizontalFrameSize()

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.input.Width = m.width - len(m.session.Config().Prompt) - 1
	m.help.Width = m.width
	m.refreshViewport()
	return nil
}

func handleCommandFinishedMsg(m *model, msg commandFinishedMsg) tea.Cmd {
	res := msg.result
	m.appendLines(echoStyle.Render(m.session.Config().Prompt + msg.line))
	for _, line := range strings.Split(strings.TrimRight(res.Output, "\n"), "\n") {
		if line != "" {
			m.appendLines(line)
		}
	}

	m.lastError = res.Err
	if res.OK {
		m.status = successStyle.Render(fmt.Sprintf("%s succeeded", res.Command))
	} else {
		m.status = errorStyle.Render(fmt.Sprintf("%s failed", res.Command))
	}

	if m.session.Done() {
		m.currentState = stateExited
		return tea.Quit
	}
	m.currentState = stateInput
	return nil
}

func handleLineErrorMsg(m *model, msg lineErrorMsg) tea.Cmd {
	m.appendLines(echoStyle.Render(m.session.Config().Prompt+msg.line), errorStyle.Render(msg.err.Error()))
	m.lastError = msg.err
	m.status = errorStyle.Render("invalid input")
	m.currentState = stateInput
	return nil
}
