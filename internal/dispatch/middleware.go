// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import (
	"fmt"
	"runtime/debug"
	"time"

	"command-dispatcher/internal/logger"
	"command-dispatcher/internal/payload"
)

// Logging records every invocation with its outcome and duration at debug
// level.
func Logging(name string, next Handler) Handler {
	return HandlerFunc(func(p payload.Value) error {
		start := time.Now()
		err := next.Handle(p)
		if err != nil {
			logger.Debug("Command failed.", "command", name, "payload", p.String(), "duration", time.Since(start), "error", err)
		} else {
			logger.Debug("Command succeeded.", "command", name, "duration", time.Since(start))
		}
		return err
	})
}

// Recovery turns a handler panic into an error so one bad command cannot take
// the shell down.
func Recovery(name string, next Handler) Handler {
	return HandlerFunc(func(p payload.Value) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Command handler panicked.", "command", name, "panic", r, "stack", string(debug.Stack()))
				err = fmt.Errorf("command %s: internal error: %v", name, r)
			}
		}()
		return next.Handle(p)
	})
}
