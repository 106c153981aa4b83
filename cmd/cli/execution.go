// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"command-dispatcher/internal/employee"
	"command-dispatcher/internal/logger"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	showTable bool
	strict    bool
)

var runCmd = &cobra.Command{
	Use:   "run <command> [payload]",
	Short: "Run a single command",
	Long: `Runs one command against a fresh store. The payload is JSON or YAML text;
when omitted the preset payload from the configuration is used.`,
	Example: `  dispatch run help
  dispatch run add '[{"name": "Ana", "position": "QA"}]' --table
  dispatch run exit '{"reason": "done"}'`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: commandCompletionFunc,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, p, err := session.ParseLine(strings.Join(args, " "))
		if err != nil {
			errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitError{err}
		}

		execErr := session.Exec(name, p)
		if showTable {
			if err := renderEmployeeTable(os.Stdout, session.Store().List()); err != nil {
				return err
			}
		}
		if execErr != nil {
			logger.Debug("Command failed.", "command", name, "error", execErr)
			return exitError{execErr}
		}
		return nil
	},
}

var scriptCmd = &cobra.Command{
	Use:   "script <file>",
	Short: "Run a list of commands from a YAML or JSON file",
	Long: `Runs each {command, payload} entry of the file in order against one store,
stopping once exit succeeds. Use "-" to read the script from stdin.

Failed commands are reported but do not stop the script unless --strict is set,
in which case the exit status is non-zero when any command failed.`,
	Example: `  dispatch script demo.yaml
  cat demo.json | dispatch script - --table`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			in = f
		}

		report, err := session.RunScript(in)
		if err != nil {
			return err
		}

		if showTable {
			if err := renderEmployeeTable(os.Stdout, session.Store().List()); err != nil {
				return err
			}
		}

		summary := fmt.Sprintf("\nExecuted %d command(s), %d failed.", report.Executed, report.Failed)
		if report.Failed > 0 {
			errorColor.Fprintln(os.Stderr, summary)
		} else {
			successColor.Fprintln(os.Stderr, summary)
		}
		if strict && report.Failed > 0 {
			return exitError{fmt.Errorf("%d command(s) failed", report.Failed)}
		}
		return nil
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the registered commands",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		descriptions := commandDescriptions()
		for _, name := range session.Commands() {
			if desc, ok := descriptions[name]; ok {
				fmt.Printf("%s\t%s\n", identifierColor.Sprint(name), desc)
				continue
			}
			fmt.Println(identifierColor.Sprint(name))
		}
	},
}

// renderEmployeeTable writes the store contents as a table.
func renderEmployeeTable(w io.Writer, employees []employee.Employee) error {
	if len(employees) == 0 {
		statusColor.Fprintln(w, "\nNo employees.")
		return nil
	}
	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Position")
	for _, e := range employees {
		if err := table.Append([]string{strconv.Itoa(e.ID), e.Name, e.Position}); err != nil {
			return fmt.Errorf("failed to render employee table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render employee table: %w", err)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{runCmd, scriptCmd} {
		c.Flags().BoolVar(&showTable, "table", false, "print the employee list as a table afterwards")
	}
	scriptCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero if any command failed")
}
