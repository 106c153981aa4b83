// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"command-dispatcher/internal/logger"
)

// RunLoop reads commands from in, one per line, until exit succeeds or in is
// exhausted. Command failures are reported on the session output and do not
// end the loop.
func (s *Session) RunLoop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for !s.Done() {
		fmt.Fprintln(s.out, `Type "help" to view list of commands.`)
		fmt.Fprint(s.out, "\t"+s.cfg.Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			break
		}
		line := scanner.Text()
		if err := s.ExecLine(line); err != nil {
			// Handlers print their own failures; only parse errors need reporting here.
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				fmt.Fprintln(s.out, parseErr.Error())
			}
			logger.Debug("Line failed.", "line", line, "error", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
