// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package controller implements the shell's built-in commands on top of the
// employee store. Each command validates its own payload; nothing is printed
// or mutated until the whole payload has been checked.
package controller

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"command-dispatcher/internal/dispatch"
	"command-dispatcher/internal/employee"
	"command-dispatcher/internal/payload"

	"github.com/fatih/color"
)

// Command names handled by the controller.
const (
	CommandHelp   = "help"
	CommandExit   = "exit"
	CommandAdd    = "add"
	CommandPrint  = "print"
	CommandRemove = "remove"
)

// Payload field names.
const (
	FieldName        = "name"
	FieldCommand     = "command"
	FieldDescription = "description"
	FieldPosition    = "position"
	FieldReason      = "reason"
)

var (
	headerColor     = color.New(color.Bold)
	errorColor      = color.New(color.FgRed)
	successColor    = color.New(color.FgGreen)
	identifierColor = color.New(color.FgBlue)
	dimColor        = color.New(color.Faint)
)

// Controller owns the state the commands act on: the store, the output sink
// and the termination flag set by exit.
type Controller struct {
	store *employee.Store

	outMu sync.Mutex
	out   io.Writer

	done atomic.Bool
}

// New returns a controller writing to out.
func New(store *employee.Store, out io.Writer) *Controller {
	if out == nil {
		out = io.Discard
	}
	return &Controller{store: store, out: out}
}

// SetOutput redirects command output.
func (c *Controller) SetOutput(out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	c.outMu.Lock()
	defer c.outMu.Unlock()
	c.out = out
}

func (c *Controller) writer() io.Writer {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	return c.out
}

// Done reports whether a successful exit has been dispatched.
func (c *Controller) Done() bool {
	return c.done.Load()
}

// Store returns the store the commands operate on.
func (c *Controller) Store() *employee.Store {
	return c.store
}

// Handlers returns the command table in the order commands are registered.
func (c *Controller) Handlers() []NamedHandler {
	return []NamedHandler{
		{CommandHelp, dispatch.HandlerFunc(c.Help)},
		{CommandExit, dispatch.HandlerFunc(c.Exit)},
		{CommandAdd, dispatch.HandlerFunc(c.Add)},
		{CommandPrint, dispatch.HandlerFunc(c.Print)},
		{CommandRemove, dispatch.HandlerFunc(c.Remove)},
	}
}

// CommandNames lists the built-in commands in registration order.
func CommandNames() []string {
	return []string{CommandHelp, CommandExit, CommandAdd, CommandPrint, CommandRemove}
}

// NamedHandler is one row of the command table.
type NamedHandler struct {
	Name    string
	Handler dispatch.Handler
}

// Register installs every command on d.
func (c *Controller) Register(d *dispatch.Dispatcher) error {
	for _, nh := range c.Handlers() {
		if !d.Register(nh.Name, nh.Handler) {
			return fmt.Errorf("%w: %s", dispatch.ErrDuplicateRegistration, nh.Name)
		}
	}
	return nil
}

func malformed(command string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", dispatch.ErrMalformedPayload, command, fmt.Sprintf(format, args...))
}

type helpEntry struct {
	name        string
	description string
}

// Help prints each {name, description} entry of a sequence payload. The
// command key is accepted in place of name.
func (c *Controller) Help(p payload.Value) error {
	items, ok := p.Items()
	if !ok {
		errorColor.Fprintln(c.writer(), "help: command not successful.")
		return malformed(CommandHelp, "expected a sequence, got %s", p.Kind())
	}

	entries := make([]helpEntry, 0, len(items))
	for i, item := range items {
		name, ok := item.StringField(FieldName)
		if !ok {
			name, ok = item.StringField(FieldCommand)
		}
		desc, descOK := item.StringField(FieldDescription)
		if !ok || !descOK {
			errorColor.Fprintln(c.writer(), "help: command not successful.")
			return malformed(CommandHelp, "entry %d needs string name and description fields", i+1)
		}
		entries = append(entries, helpEntry{name: name, description: desc})
	}

	w := c.writer()
	for _, e := range entries {
		fmt.Fprintf(w, "%s - %s\n", identifierColor.Sprint(e.name), e.description)
	}
	return nil
}

// Exit prints the reason field and marks the session as done.
func (c *Controller) Exit(p payload.Value) error {
	reason, ok := p.Field(FieldReason)
	if !ok {
		errorColor.Fprintln(c.writer(), "Exit command not successful.")
		return malformed(CommandExit, "missing %q field", FieldReason)
	}

	text, isString := reason.AsString()
	if !isString {
		text = reason.String()
	}
	fmt.Fprintln(c.writer(), text)
	c.done.Store(true)
	return nil
}

type newEmployee struct {
	name     string
	position string
}

// Add creates one employee per {name, position} entry of a sequence payload.
func (c *Controller) Add(p payload.Value) error {
	items, ok := p.Items()
	if !ok {
		errorColor.Fprintln(c.writer(), "add: command not successful.")
		return malformed(CommandAdd, "expected a sequence, got %s", p.Kind())
	}

	batch := make([]newEmployee, 0, len(items))
	for i, item := range items {
		name, nameOK := item.StringField(FieldName)
		position, posOK := item.StringField(FieldPosition)
		if !nameOK || !posOK {
			errorColor.Fprintln(c.writer(), "add: command not successful.")
			return malformed(CommandAdd, "entry %d needs string name and position fields", i+1)
		}
		batch = append(batch, newEmployee{name: name, position: position})
	}

	w := c.writer()
	for _, e := range batch {
		id := c.store.Add(e.name, e.position)
		dimColor.Fprintf(w, "Added employee %d. %s - %s\n", id, e.name, e.position)
	}
	successColor.Fprintf(w, "Employees added: %d\n", len(batch))
	return nil
}

// Print writes the header payload followed by every employee. An empty store
// is reported as a failure.
func (c *Controller) Print(p payload.Value) error {
	header, ok := p.AsString()
	if !ok {
		errorColor.Fprintln(c.writer(), "print: command not successful.")
		return malformed(CommandPrint, "expected a string header, got %s", p.Kind())
	}

	employees := c.store.List()
	w := c.writer()
	if len(employees) == 0 {
		fmt.Fprintln(w, "Empty list of employees")
		return fmt.Errorf("%w: no employees to print", dispatch.ErrEmptyState)
	}

	headerColor.Fprintln(w, strings.TrimRight(header, "\r\n"))
	for _, e := range employees {
		fmt.Fprintf(w, "Employee: %s. %s - %s\n", identifierColor.Sprint(e.ID), e.Name, e.Position)
	}
	return nil
}

// Remove deletes the employee whose id is the integer payload.
func (c *Controller) Remove(p payload.Value) error {
	id, ok := p.AsInt()
	if !ok {
		errorColor.Fprintln(c.writer(), "remove: command not successful.")
		return malformed(CommandRemove, "expected an integer id, got %s", p.Kind())
	}

	w := c.writer()
	if !c.store.Remove(id) {
		fmt.Fprintln(w, "Employee with the given ID does not exist.")
		return fmt.Errorf("%w: employee %d", dispatch.ErrNotFound, id)
	}
	successColor.Fprintf(w, "Employee %d removed.\n", id)
	return nil
}
