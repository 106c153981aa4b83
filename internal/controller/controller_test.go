// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package controller

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"command-dispatcher/internal/dispatch"
	"command-dispatcher/internal/employee"
	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/payload"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	logger.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type fixture struct {
	store *employee.Store
	ctrl  *Controller
	disp  *dispatch.Dispatcher
	out   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	out := &bytes.Buffer{}
	store := employee.NewStore()
	ctrl := New(store, out)
	disp := dispatch.New(out)
	if err := ctrl.Register(disp); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return &fixture{store: store, ctrl: ctrl, disp: disp, out: out}
}

func person(name, position string) payload.Value {
	return payload.Map(
		payload.Field{Key: FieldName, Value: payload.String(name)},
		payload.Field{Key: FieldPosition, Value: payload.String(position)},
	)
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestAddThenPrint(t *testing.T) {
	f := newFixture(t)
	if !f.disp.Dispatch(CommandAdd, payload.Seq(person("Peter", "C++ Developer"))) {
		t.Fatalf("add failed: %s", f.out.String())
	}
	f.out.Reset()

	if !f.disp.Dispatch(CommandPrint, payload.String("Printing list of employees:")) {
		t.Fatalf("print failed: %s", f.out.String())
	}
	got := lines(f.out.String())
	want := []string{"Printing list of employees:", "Employee: 1. Peter - C++ Developer"}
	if len(got) != len(want) {
		t.Fatalf("print output = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPrintTrimsTrailingNewlineFromHeader(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Ivan", "Java Developer")
	if err := f.ctrl.Print(payload.String("Printing list of employees:\n")); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got := lines(f.out.String())[0]; got != "Printing list of employees:" {
		t.Fatalf("header line = %q", got)
	}
}

func TestPrintFailures(t *testing.T) {
	f := newFixture(t)
	err := f.ctrl.Print(payload.String("header"))
	if !errors.Is(err, dispatch.ErrEmptyState) {
		t.Fatalf("Print on empty store error = %v", err)
	}
	if !strings.Contains(f.out.String(), "Empty list of employees") {
		t.Fatalf("output = %q", f.out.String())
	}

	f.store.Add("Peter", "C++ Developer")
	if err := f.ctrl.Print(payload.Int(3)); !errors.Is(err, dispatch.ErrMalformedPayload) {
		t.Fatalf("Print(int) error = %v", err)
	}
}

func TestExit(t *testing.T) {
	f := newFixture(t)
	if f.ctrl.Done() {
		t.Fatalf("controller starts done")
	}
	if !f.disp.Dispatch(CommandExit, payload.Map(payload.Field{Key: FieldReason, Value: payload.String("done")})) {
		t.Fatalf("exit failed")
	}
	if !f.ctrl.Done() {
		t.Fatalf("exit did not set the termination flag")
	}
	if got := strings.TrimSpace(f.out.String()); got != "done" {
		t.Fatalf("exit output = %q", got)
	}
}

func TestExitWithoutReason(t *testing.T) {
	f := newFixture(t)
	for _, p := range []payload.Value{
		payload.Absent(),
		payload.String("done"),
		payload.Map(payload.Field{Key: "why", Value: payload.String("done")}),
	} {
		if err := f.ctrl.Exit(p); !errors.Is(err, dispatch.ErrMalformedPayload) {
			t.Fatalf("Exit(%v) error = %v", p, err)
		}
	}
	if f.ctrl.Done() {
		t.Fatalf("failed exit set the termination flag")
	}
}

func TestAddRejectsMalformedWithoutPartialMutation(t *testing.T) {
	tests := []struct {
		name string
		p    payload.Value
	}{
		{"not a sequence", payload.String("Peter")},
		{"absent", payload.Absent()},
		{"second entry missing position", payload.Seq(
			person("Peter", "C++ Developer"),
			payload.Map(payload.Field{Key: FieldName, Value: payload.String("Ivan")}),
		)},
		{"entry not a mapping", payload.Seq(person("Peter", "C++ Developer"), payload.Int(7))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if err := f.ctrl.Add(tt.p); !errors.Is(err, dispatch.ErrMalformedPayload) {
				t.Fatalf("Add error = %v", err)
			}
			if f.store.Len() != 0 {
				t.Fatalf("store mutated: %v", f.store.List())
			}
		})
	}
}

func TestAddKeepsOrder(t *testing.T) {
	f := newFixture(t)
	p := payload.MustFrom([]map[string]string{
		{"name": "Peter", "position": "C++ Developer"},
		{"name": "Ivan", "position": "Java Developer"},
		{"name": "Michal", "position": "UI Designer"},
	})
	if err := f.ctrl.Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	list := f.store.List()
	if len(list) != 3 {
		t.Fatalf("len = %d", len(list))
	}
	for i, name := range []string{"Peter", "Ivan", "Michal"} {
		if list[i].Name != name || list[i].ID != i+1 {
			t.Errorf("list[%d] = %+v", i, list[i])
		}
	}
	if !strings.Contains(f.out.String(), "Employees added: 3") {
		t.Fatalf("output = %q", f.out.String())
	}
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Peter", "C++ Developer")
	id := f.store.Add("Ivan", "Java Developer")

	if err := f.ctrl.Remove(payload.Int(id)); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if f.store.Len() != 1 {
		t.Fatalf("Len = %d", f.store.Len())
	}
	if err := f.ctrl.Remove(payload.Int(id)); !errors.Is(err, dispatch.ErrNotFound) {
		t.Fatalf("second Remove error = %v", err)
	}
	if f.store.Len() != 1 {
		t.Fatalf("failed remove changed size to %d", f.store.Len())
	}
	if err := f.ctrl.Remove(payload.String("1")); !errors.Is(err, dispatch.ErrMalformedPayload) {
		t.Fatalf("Remove(string) error = %v", err)
	}
}

func TestRemoveMissingOnEmptyStore(t *testing.T) {
	f := newFixture(t)
	if f.disp.Dispatch(CommandRemove, payload.Int(5)) {
		t.Fatalf("remove 5 on empty store succeeded")
	}
	if f.store.Len() != 0 {
		t.Fatalf("store not empty")
	}
	if !strings.Contains(f.out.String(), "Employee with the given ID does not exist.") {
		t.Fatalf("output = %q", f.out.String())
	}
}

func TestHelp(t *testing.T) {
	f := newFixture(t)
	p, err := payload.Parse(`[
		{"command": "help", "description": "Print this Help."},
		{"name": "exit", "description": "Exit this program."}
	]`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := f.ctrl.Help(p); err != nil {
		t.Fatalf("Help: %v", err)
	}
	want := []string{"help - Print this Help.", "exit - Exit this program."}
	got := lines(f.out.String())
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("help output = %q, want %q", got, want)
	}

	f.out.Reset()
	if err := f.ctrl.Help(payload.String("help")); !errors.Is(err, dispatch.ErrMalformedPayload) {
		t.Fatalf("Help(string) error = %v", err)
	}
	if err := f.ctrl.Help(payload.Seq(payload.Map(payload.Field{Key: FieldName, Value: payload.String("x")}))); !errors.Is(err, dispatch.ErrMalformedPayload) {
		t.Fatalf("Help(entry without description) error = %v", err)
	}
}

func TestUnknownCommandLeavesStateAlone(t *testing.T) {
	f := newFixture(t)
	f.store.Add("Peter", "C++ Developer")
	if f.disp.Dispatch("nonexistent", payload.Map(payload.Field{Key: FieldReason, Value: payload.String("x")})) {
		t.Fatalf("unknown command succeeded")
	}
	if f.store.Len() != 1 || f.ctrl.Done() {
		t.Fatalf("unknown command changed state")
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	f := newFixture(t)
	if err := f.ctrl.Register(f.disp); !errors.Is(err, dispatch.ErrDuplicateRegistration) {
		t.Fatalf("second Register error = %v", err)
	}
}

func TestCommandNamesMatchHandlers(t *testing.T) {
	f := newFixture(t)
	handlers := f.ctrl.Handlers()
	names := CommandNames()
	if len(names) != len(handlers) {
		t.Fatalf("CommandNames has %d entries, handler table %d", len(names), len(handlers))
	}
	for i, nh := range handlers {
		if names[i] != nh.Name {
			t.Errorf("CommandNames()[%d] = %q, want %q", i, names[i], nh.Name)
		}
	}
}
