// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the keyboard bindings for the TUI shell.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the shell.
type KeyMap struct {
	Quit     key.Binding // Exit without dispatching exit
	Enter    key.Binding // Run the typed command
	Complete key.Binding // Complete the command name
	Prev     key.Binding // Previous history entry
	Next     key.Binding // Next history entry
	PgUp     key.Binding // Scroll output up
	PgDown   key.Binding // Scroll output down
	Clear    key.Binding // Clear the scrollback
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Complete, k.Prev, k.PgUp, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Complete, k.Prev, k.Next},
		{k.PgUp, k.PgDown, k.Clear, k.Quit},
	}
}
