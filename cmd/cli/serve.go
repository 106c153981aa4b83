// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"command-dispatcher/internal/api"
	"command-dispatcher/internal/logger"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const shutdownTimeout = 5 * time.Second

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the command API over HTTP",
	Long: `Starts an HTTP server exposing the session:

  POST /api/commands          {"command": "...", "payload": ...}
  POST /api/commands/{name}   body is the payload
  GET  /api/commands          registered command names
  GET  /api/employees         current employee list

The server shuts down gracefully once an exit command succeeds or on SIGINT/SIGTERM.`,
	Example: `  dispatch serve --listen 127.0.0.1:9000`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.ListenAddr
		if listenAddr != "" {
			addr = listenAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, addr, os.Stdout)
	},
}

// runServer serves the API on addr until ctx is done or exit succeeds.
func runServer(ctx context.Context, addr string, out io.Writer) error {
	srv := api.NewServer(session)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	statusColor.Fprintf(out, "Serving command API on %s\n", identifierColor.Sprint(addr))
	logger.Info("HTTP server started.", "addr", addr)

	var s *spinner.Spinner
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
		s.Color("cyan")
		s.Suffix = " Waiting for requests..."
		s.Start()
	}
	stopSpinner := func() {
		if s != nil {
			s.Stop()
		}
	}

	select {
	case err := <-errCh:
		stopSpinner()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-srv.Exited():
		stopSpinner()
		statusColor.Fprintln(out, "Exit command received, shutting down.")
	case <-ctx.Done():
		stopSpinner()
		statusColor.Fprintln(out, "Interrupted, shutting down.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	logger.Info("HTTP server stopped.", "addr", addr)
	successColor.Fprintln(out, "Server stopped.")
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (overrides listen_addr)")
}
