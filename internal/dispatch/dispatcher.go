// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package dispatch maps command names to handlers and invokes them by name.
// The dispatcher knows nothing about payload shapes or about the object that
// implements a command; validation is left entirely to the handler.
package dispatch

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/payload"
)

// Handler runs one command. A nil error means the command succeeded.
type Handler interface {
	Handle(p payload.Value) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(p payload.Value) error

// Handle calls f(p).
func (f HandlerFunc) Handle(p payload.Value) error {
	return f(p)
}

// Middleware wraps the handler registered under name.
type Middleware func(name string, next Handler) Handler

// Dispatcher is a registry of named handlers.
type Dispatcher struct {
	mu          sync.RWMutex
	handlers    map[string]Handler
	order       []string
	middlewares []Middleware
	out         io.Writer
}

// New creates an empty dispatcher. Unsupported commands are reported on out.
func New(out io.Writer) *Dispatcher {
	if out == nil {
		out = io.Discard
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		out:      out,
	}
}

// Use appends middlewares. The first middleware given is the outermost.
func (d *Dispatcher) Use(mw ...Middleware) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.middlewares = append(d.middlewares, mw...)
}

// SetOutput changes where unsupported commands are reported.
func (d *Dispatcher) SetOutput(out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = out
}

// Register installs h under name. It returns false, and keeps the existing
// handler, when name is already taken.
func (d *Dispatcher) Register(name string, h Handler) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[name]; exists {
		logger.Warn("Rejected handler registration.", "command", name, "error", ErrDuplicateRegistration)
		return false
	}
	d.handlers[name] = h
	d.order = append(d.order, name)
	logger.Debug("Registered command handler.", "command", name)
	return true
}

// Lookup returns the handler registered under name.
func (d *Dispatcher) Lookup(name string) (Handler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handlers[name]
	return h, ok
}

// Names returns the registered command names in registration order.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.order)
}

// Exec resolves name and runs its handler with p. Unknown names yield
// ErrUnsupportedCommand without invoking anything.
func (d *Dispatcher) Exec(name string, p payload.Value) error {
	d.mu.RLock()
	h, ok := d.handlers[name]
	mws := d.middlewares
	out := d.out
	d.mu.RUnlock()

	if !ok {
		fmt.Fprintf(out, "COMMAND: %s not supported.\n", name)
		return fmt.Errorf("%w: %q", ErrUnsupportedCommand, name)
	}

	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](name, h)
	}
	return h.Handle(p)
}

// Dispatch is Exec reduced to a success flag.
func (d *Dispatcher) Dispatch(name string, p payload.Value) bool {
	return d.Exec(name, p) == nil
}
