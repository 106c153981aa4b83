// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package api exposes a shell session over HTTP. Requests may arrive
// concurrently; the session runs them one at a time.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/shell"
	"command-dispatcher/internal/web"

	"github.com/gorilla/mux"
)

// Server serves the command API for one session.
type Server struct {
	session *shell.Session

	exitOnce sync.Once
	exited   chan struct{}
}

// NewServer wraps session.
func NewServer(session *shell.Session) *Server {
	return &Server{
		session: session,
		exited:  make(chan struct{}),
	}
}

// Exited is closed after an exit command succeeds.
func (s *Server) Exited() <-chan struct{} {
	return s.exited
}

// Router builds a router with every API route registered.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes registers the API routes on router.
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/commands", s.listCommandsHandler).Methods("GET")
	router.HandleFunc("/api/commands", s.runCommandHandler).Methods("POST")
	router.HandleFunc("/api/commands/{name}", s.runNamedCommandHandler).Methods("POST")
	router.HandleFunc("/api/employees", s.listEmployeesHandler).Methods("GET")
	router.Use(requestLogger)

	// Must be registered after API routes to avoid shadowing them
	router.PathPrefix("/").Handler(http.FileServer(web.GetFileSystem()))
}

// writeJSONResponse writes a JSON response with CORS headers
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response.", "error", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("HTTP request.", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
