// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"os"
	"strings"

	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/shell"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start a line-editing prompt with command completion",
	Long: `Starts an interactive prompt. Type "<command> [payload]"; Tab completes
command names and offers the preset payload for the typed command.
The prompt closes once exit succeeds or on Ctrl-D.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runREPL()
	},
}

// commandCompleter produces go-prompt suggestions for a session.
type commandCompleter struct {
	commands []prompt.Suggest
	presets  map[string]string
}

func newCommandCompleter(s *shell.Session) *commandCompleter {
	descriptions := commandDescriptions()
	c := &commandCompleter{presets: make(map[string]string)}
	for _, name := range s.Commands() {
		c.commands = append(c.commands, prompt.Suggest{Text: name, Description: descriptions[name]})
		if p, ok := s.Config().Preset(name); ok {
			c.presets[name] = p.String()
		}
	}
	return c
}

// Complete suggests command names for the first word and the configured
// preset for the payload.
func (c *commandCompleter) Complete(d prompt.Document) []prompt.Suggest {
	text := d.TextBeforeCursor()
	name, rest, hasPayload := strings.Cut(text, " ")
	if !hasPayload {
		return prompt.FilterHasPrefix(c.commands, name, true)
	}
	preset, ok := c.presets[name]
	if !ok || strings.TrimSpace(rest) != "" {
		return nil
	}
	return []prompt.Suggest{{Text: preset, Description: "preset"}}
}

func runREPL() {
	completer := newCommandCompleter(session)
	executor := func(line string) {
		err := session.ExecLine(line)
		var parseErr *shell.ParseError
		if errors.As(err, &parseErr) {
			errorColor.Fprintln(os.Stderr, parseErr.Error())
			return
		}
		if err != nil && !shell.IsUserError(err) {
			logger.Error("Command failed.", "line", line, "error", err)
		}
	}

	statusColor.Println(`Type "help" to view list of commands.`)
	p := prompt.New(
		executor,
		completer.Complete,
		prompt.OptionTitle("command-dispatcher"),
		prompt.OptionPrefix(session.Config().Prompt),
		prompt.OptionPrefixTextColor(prompt.Green),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
		prompt.OptionCompletionWordSeparator(" "),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && session.Done()
		}),
	)
	p.Run()
}
