// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"strings"

	"command-dispatcher/internal/config"
	"command-dispatcher/internal/controller"

	"github.com/spf13/cobra"
)

// commandDescriptions reads the help preset into a name to description map.
// Entries that are not well formed are skipped.
func commandDescriptions() map[string]string {
	descriptions := make(map[string]string)
	preset, ok := cfg.Preset(controller.CommandHelp)
	if !ok {
		return descriptions
	}
	items, _ := preset.Items()
	for _, item := range items {
		name, ok := item.StringField(controller.FieldName)
		if !ok {
			name, ok = item.StringField(controller.FieldCommand)
		}
		desc, descOK := item.StringField(controller.FieldDescription)
		if ok && descOK {
			descriptions[name] = desc
		}
	}
	return descriptions
}

// commandCompletionFunc completes the command name for `run`. Shell
// completion skips PersistentPreRunE, so config is loaded here.
func commandCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	if cfg.Presets == nil {
		loaded, err := config.LoadConfig()
		if err != nil {
			loaded = config.Default()
		}
		cfg = loaded
	}
	descriptions := commandDescriptions()

	var suggestions []string
	for _, name := range controller.CommandNames() {
		if !strings.HasPrefix(name, toComplete) {
			continue
		}
		if desc, ok := descriptions[name]; ok {
			name += "\t" + desc
		}
		suggestions = append(suggestions, name)
	}
	return suggestions, cobra.ShellCompDirectiveNoFileComp
}
