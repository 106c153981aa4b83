// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"testing"

	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/payload"
)

func TestMain(m *testing.M) {
	logger.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func TestRegisterDispatch(t *testing.T) {
	d := New(nil)
	var got payload.Value
	ok := d.Register("sample", HandlerFunc(func(p payload.Value) error {
		got = p
		return nil
	}))
	if !ok {
		t.Fatalf("Register returned false for a new name")
	}
	if !d.Dispatch("sample", payload.String("hello")) {
		t.Fatalf("Dispatch returned false")
	}
	if s, _ := got.AsString(); s != "hello" {
		t.Fatalf("handler saw payload %v", got)
	}
}

func TestRegisterDuplicateKeepsFirst(t *testing.T) {
	d := New(nil)
	first, second := 0, 0
	if !d.Register("dup", HandlerFunc(func(payload.Value) error { first++; return nil })) {
		t.Fatalf("first Register returned false")
	}
	if d.Register("dup", HandlerFunc(func(payload.Value) error { second++; return nil })) {
		t.Fatalf("second Register returned true")
	}
	d.Dispatch("dup", payload.Absent())
	if first != 1 || second != 0 {
		t.Fatalf("first=%d second=%d, want 1/0", first, second)
	}
	if names := d.Names(); len(names) != 1 {
		t.Fatalf("Names() = %v", names)
	}
}

func TestUnsupportedCommand(t *testing.T) {
	var out bytes.Buffer
	d := New(&out)
	called := false
	d.Register("known", HandlerFunc(func(payload.Value) error { called = true; return nil }))

	if d.Dispatch("nonexistent", payload.Int(1)) {
		t.Fatalf("Dispatch of unknown command returned true")
	}
	if called {
		t.Fatalf("a handler was invoked for an unknown command")
	}
	err := d.Exec("nonexistent", payload.Absent())
	if !errors.Is(err, ErrUnsupportedCommand) {
		t.Fatalf("Exec error = %v, want ErrUnsupportedCommand", err)
	}
	if !strings.Contains(out.String(), "COMMAND: nonexistent not supported.") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestHandlerFailurePropagates(t *testing.T) {
	d := New(nil)
	d.Register("bad", HandlerFunc(func(payload.Value) error {
		return ErrMalformedPayload
	}))
	if d.Dispatch("bad", payload.Absent()) {
		t.Fatalf("Dispatch returned true for a failing handler")
	}
	if err := d.Exec("bad", payload.Absent()); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("Exec error = %v", err)
	}
}

func TestNamesInRegistrationOrder(t *testing.T) {
	d := New(nil)
	want := []string{"help", "exit", "add", "print", "remove"}
	for _, n := range want {
		d.Register(n, HandlerFunc(func(payload.Value) error { return nil }))
	}
	if got := d.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if _, ok := d.Lookup("print"); !ok {
		t.Fatalf("Lookup(print) failed")
	}
	if _, ok := d.Lookup("list"); ok {
		t.Fatalf("Lookup(list) succeeded")
	}
}

func TestMiddlewareOrder(t *testing.T) {
	d := New(nil)
	var trace []string
	tag := func(label string) Middleware {
		return func(name string, next Handler) Handler {
			return HandlerFunc(func(p payload.Value) error {
				trace = append(trace, label+":"+name)
				return next.Handle(p)
			})
		}
	}
	d.Use(tag("outer"), tag("inner"))
	d.Register("cmd", HandlerFunc(func(payload.Value) error {
		trace = append(trace, "handler")
		return nil
	}))
	d.Dispatch("cmd", payload.Absent())
	want := []string{"outer:cmd", "inner:cmd", "handler"}
	if !slices.Equal(trace, want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	d := New(nil)
	d.Use(Recovery, Logging)
	d.Register("boom", HandlerFunc(func(payload.Value) error { panic("kaboom") }))
	err := d.Exec("boom", payload.Absent())
	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Fatalf("Exec error = %v", err)
	}
}
