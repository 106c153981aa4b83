package main

import "command-dispatcher/cmd/cli"

func main() {
	// With no subcommand the root command picks the TUI or line mode
	// depending on whether stdin is a terminal.
	cli.RunCLI()
}
