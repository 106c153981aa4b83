// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package shell ties the employee store, the command handlers and the
// dispatcher into a session that drivers (line mode, REPL, TUI, HTTP) feed
// with commands until exit succeeds.
package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"command-dispatcher/internal/config"
	"command-dispatcher/internal/controller"
	"command-dispatcher/internal/dispatch"
	"command-dispatcher/internal/employee"
	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/payload"
)

// Session is the state threaded between dispatch calls: the store and the
// done flag. Commands run one at a time.
type Session struct {
	cfg   config.Config
	store *employee.Store
	ctrl  *controller.Controller
	disp  *dispatch.Dispatcher

	mu  sync.Mutex
	out io.Writer
}

// Result is the captured outcome of a single command.
type Result struct {
	Command string
	OK      bool
	Output  string
	Err     error
}

// NewSession builds a session writing command output to out.
func NewSession(cfg config.Config, out io.Writer) (*Session, error) {
	if out == nil {
		out = io.Discard
	}
	store := employee.NewStore()
	ctrl := controller.New(store, out)
	disp := dispatch.New(out)
	disp.Use(dispatch.Recovery, dispatch.Logging)

	if err := ctrl.Register(disp); err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	return &Session{
		cfg:   cfg,
		store: store,
		ctrl:  ctrl,
		disp:  disp,
		out:   out,
	}, nil
}

// Config returns the configuration the session was built with.
func (s *Session) Config() config.Config { return s.cfg }

// Store returns the session's employee store.
func (s *Session) Store() *employee.Store { return s.store }

// Commands returns the registered command names.
func (s *Session) Commands() []string { return s.disp.Names() }

// Done reports whether exit has succeeded.
func (s *Session) Done() bool { return s.ctrl.Done() }

// Exec runs one command and returns its classified error.
func (s *Session) Exec(name string, p payload.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disp.Exec(name, p)
}

// Execute runs one command and reports whether it succeeded.
func (s *Session) Execute(name string, p payload.Value) bool {
	return s.Exec(name, p) == nil
}

// Capture runs one command with its output collected instead of written to
// the session's sink.
func (s *Session) Capture(name string, p payload.Value) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	s.ctrl.SetOutput(&buf)
	s.disp.SetOutput(&buf)
	defer func() {
		s.ctrl.SetOutput(s.out)
		s.disp.SetOutput(s.out)
	}()

	err := s.disp.Exec(name, p)
	return Result{Command: name, OK: err == nil, Output: buf.String(), Err: err}
}

// ParseLine splits "<command> [payload]" into its parts. Without payload text
// the configured preset for the command is used; with neither the payload is
// absent. A line holding a whole {"command": ..., "payload": ...} document is
// accepted as well.
func (s *Session) ParseLine(line string) (string, payload.Value, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", payload.Value{}, nil
	}

	if strings.HasPrefix(line, "{") {
		inv, err := payload.ParseInvocation(line)
		if err != nil {
			return "", payload.Value{}, &ParseError{Command: "<document>", Err: err}
		}
		return inv.Command, inv.Payload, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		p, _ := s.cfg.Preset(name)
		return name, p, nil
	}

	p, err := payload.Parse(rest)
	if err != nil {
		return name, payload.Value{}, &ParseError{Command: name, Err: err}
	}
	return name, p, nil
}

// ParseError reports payload text that is not valid JSON or YAML. It matches
// dispatch.ErrMalformedPayload.
type ParseError struct {
	Command string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid payload: %v", e.Command, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{dispatch.ErrMalformedPayload, e.Err}
}

// ExecLine parses and runs a single line of input. Blank lines are ignored.
func (s *Session) ExecLine(line string) error {
	name, p, err := s.ParseLine(line)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	return s.Exec(name, p)
}

// ScriptReport summarises a script run.
type ScriptReport struct {
	Executed int
	Failed   int
}

// RunScript executes a YAML or JSON list of invocations in order and stops
// early once exit succeeds. Failing commands are counted, not fatal.
func (s *Session) RunScript(r io.Reader) (ScriptReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ScriptReport{}, fmt.Errorf("failed to read script: %w", err)
	}
	invs, err := payload.ParseInvocations(data)
	if err != nil {
		return ScriptReport{}, err
	}

	var report ScriptReport
	for _, inv := range invs {
		if s.Done() {
			break
		}
		report.Executed++
		if err := s.Exec(inv.Command, inv.Payload); err != nil {
			report.Failed++
			logger.Debug("Script command failed.", "command", inv.Command, "error", err)
		}
	}
	return report, nil
}

// IsUserError reports whether err is one of the expected, recoverable
// command failures rather than an I/O or internal problem.
func IsUserError(err error) bool {
	for _, target := range []error{
		dispatch.ErrUnsupportedCommand,
		dispatch.ErrMalformedPayload,
		dispatch.ErrNotFound,
		dispatch.ErrEmptyState,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
