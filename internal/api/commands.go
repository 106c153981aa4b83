// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"command-dispatcher/internal/dispatch"
	"command-dispatcher/internal/employee"
	"command-dispatcher/internal/payload"

	"github.com/gorilla/mux"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// CommandResponse is the JSON body returned for every command run.
type CommandResponse struct {
	Command string   `json:"command"`
	OK      bool     `json:"ok"`
	Output  []string `json:"output"`
	Error   string   `json:"error,omitempty"`
	Done    bool     `json:"done"`
}

// statusFor maps a command failure onto an HTTP status.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, dispatch.ErrUnsupportedCommand):
		return http.StatusNotFound
	case errors.Is(err, dispatch.ErrMalformedPayload):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dispatch.ErrNotFound), errors.Is(err, dispatch.ErrEmptyState):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func splitOutput(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}

// runCommandHandler serves POST /api/commands. The body is an invocation
// document: {"command": "add", "payload": [...]}.
//
// Response:
// - 200 OK: the command succeeded
// - 400 Bad Request: the body is not a valid invocation
// - 404 Not Found: the command is not registered
// - 409 Conflict: not found or empty state
// - 422 Unprocessable Entity: the payload has the wrong shape
func (s *Server) runCommandHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, fmt.Sprintf("Error reading request body: %v", err), http.StatusBadRequest)
		return
	}
	inv, err := payload.ParseInvocation(string(body))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	s.run(w, inv.Command, inv.Payload)
}

// runNamedCommandHandler serves POST /api/commands/{name}. The whole body is
// the payload; an empty body means the payload is absent unless ?preset=true
// asks for the configured preset instead.
func (s *Server) runNamedCommandHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, fmt.Sprintf("Error reading request body: %v", err), http.StatusBadRequest)
		return
	}
	p, err := payload.Parse(string(body))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid payload: %v", err), http.StatusBadRequest)
		return
	}
	if p.IsAbsent() && r.URL.Query().Get("preset") == "true" {
		p, _ = s.session.Config().Preset(name)
	}
	s.run(w, name, p)
}

func (s *Server) run(w http.ResponseWriter, name string, p payload.Value) {
	res := s.session.Capture(name, p)
	resp := CommandResponse{
		Command: name,
		OK:      res.OK,
		Output:  splitOutput(res.Output),
		Done:    s.session.Done(),
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	if resp.Done {
		s.exitOnce.Do(func() { close(s.exited) })
	}
	writeJSONResponse(w, statusFor(res.Err), resp)
}

// listCommandsHandler serves GET /api/commands with the registered names.
func (s *Server) listCommandsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, s.session.Commands())
}

// listEmployeesHandler serves GET /api/employees in insertion order.
func (s *Server) listEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	employees := s.session.Store().List()
	if employees == nil {
		employees = []employee.Employee{}
	}
	writeJSONResponse(w, http.StatusOK, employees)
}
