// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package shell

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"testing"

	"command-dispatcher/internal/config"
	"command-dispatcher/internal/dispatch"
	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/payload"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	logger.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s, err := NewSession(config.Default(), &out)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, &out
}

func TestSessionRegistersCommands(t *testing.T) {
	s, _ := newSession(t)
	want := []string{"help", "exit", "add", "print", "remove"}
	if got := s.Commands(); !slices.Equal(got, want) {
		t.Fatalf("Commands() = %v, want %v", got, want)
	}
}

func TestParseLine(t *testing.T) {
	s, _ := newSession(t)
	tests := []struct {
		line     string
		wantName string
		wantKind payload.Kind
	}{
		{"", "", payload.KindAbsent},
		{"print", "print", payload.KindString},
		{"remove 7", "remove", payload.KindInt},
		{`exit {"reason": "bye"}`, "exit", payload.KindMapping},
		{`add [{"name": "Ana", "position": "QA"}]`, "add", payload.KindSequence},
		{"unknown", "unknown", payload.KindAbsent},
		{`{"command": "print", "payload": 3}`, "print", payload.KindInt},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, p, err := s.ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q): %v", tt.line, err)
			}
			if name != tt.wantName || p.Kind() != tt.wantKind {
				t.Fatalf("ParseLine(%q) = %q, %s; want %q, %s", tt.line, name, p.Kind(), tt.wantName, tt.wantKind)
			}
		})
	}
}

func TestParseLineBadPayload(t *testing.T) {
	s, _ := newSession(t)
	_, _, err := s.ParseLine(`add [{"name": `)
	if !errors.Is(err, dispatch.ErrMalformedPayload) {
		t.Fatalf("error = %v, want ErrMalformedPayload", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Command != "add" {
		t.Fatalf("error = %#v, want *ParseError for add", err)
	}
}

func TestDemoSequence(t *testing.T) {
	s, out := newSession(t)
	for _, line := range []string{"help", "add", "print", "remove", "print"} {
		if err := s.ExecLine(line); err != nil {
			t.Fatalf("%s: %v\n%s", line, err, out.String())
		}
	}
	list := s.Store().List()
	if len(list) != 2 || list[0].Name != "Peter" || list[1].Name != "Ivan" {
		t.Fatalf("store after demo = %v", list)
	}
	if s.Done() {
		t.Fatalf("session done before exit")
	}
	if err := s.ExecLine("exit"); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if !s.Done() {
		t.Fatalf("session not done after exit")
	}
	if !strings.Contains(out.String(), "Exiting program on user request.") {
		t.Fatalf("exit reason missing from output:\n%s", out.String())
	}
}

func TestCaptureIsolatesOutput(t *testing.T) {
	s, out := newSession(t)
	res := s.Capture("add", payload.Seq(payload.Map(
		payload.Field{Key: "name", Value: payload.String("Peter")},
		payload.Field{Key: "position", Value: payload.String("C++ Developer")},
	)))
	if !res.OK || res.Err != nil {
		t.Fatalf("capture add = %+v", res)
	}
	res = s.Capture("print", payload.String("Printing list of employees:"))
	if !res.OK {
		t.Fatalf("capture print = %+v", res)
	}
	if !strings.Contains(res.Output, "Employee: 1. Peter - C++ Developer") {
		t.Fatalf("captured output = %q", res.Output)
	}
	if out.Len() != 0 {
		t.Fatalf("captured command leaked to session output: %q", out.String())
	}

	res = s.Capture("nonexistent", payload.Absent())
	if res.OK || !errors.Is(res.Err, dispatch.ErrUnsupportedCommand) {
		t.Fatalf("capture unknown = %+v", res)
	}
	if !strings.Contains(res.Output, "not supported") {
		t.Fatalf("captured output = %q", res.Output)
	}

	s.Execute("remove", payload.Int(1))
	if !strings.Contains(out.String(), "Employee 1 removed.") {
		t.Fatalf("output not restored after capture: %q", out.String())
	}
}

func TestRunScriptStopsAtExit(t *testing.T) {
	s, _ := newSession(t)
	script := `
- command: add
  payload: [{name: Peter, position: C++ Developer}]
- command: remove
  payload: 5
- command: exit
  payload: {reason: done}
- command: add
  payload: [{name: Late, position: Never}]
`
	report, err := s.RunScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if report.Executed != 3 || report.Failed != 1 {
		t.Fatalf("report = %+v, want 3 executed, 1 failed", report)
	}
	if s.Store().Len() != 1 {
		t.Fatalf("commands after exit were executed")
	}
}

func TestRunLoop(t *testing.T) {
	s, out := newSession(t)
	in := strings.NewReader("add\nbogus\nremove [\nexit\nprint\n")
	if err := s.RunLoop(in); err != nil {
		t.Fatalf("RunLoop: %v", err)
	}
	if !s.Done() {
		t.Fatalf("loop ended without exit")
	}
	text := out.String()
	for _, want := range []string{
		"Employees added: 3",
		"COMMAND: bogus not supported.",
		"remove: invalid payload",
		"Exiting program on user request.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Printing list of employees:") {
		t.Errorf("print after exit was executed")
	}
}

func TestRunLoopEndsAtEOF(t *testing.T) {
	s, _ := newSession(t)
	if err := s.RunLoop(strings.NewReader("add\n")); err != nil {
		t.Fatalf("RunLoop: %v", err)
	}
	if s.Done() {
		t.Fatalf("EOF must not count as exit")
	}
}

func TestIsUserError(t *testing.T) {
	if !IsUserError(dispatch.ErrNotFound) || !IsUserError(&ParseError{Command: "x", Err: io.ErrUnexpectedEOF}) {
		t.Fatalf("expected user errors")
	}
	if IsUserError(io.ErrClosedPipe) {
		t.Fatalf("I/O error classified as user error")
	}
}
