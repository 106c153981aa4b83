// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package dispatch

import "errors"

// Failure classes reported by the dispatcher and the command handlers. None of
// them are fatal; callers check them with errors.Is.
var (
	ErrUnsupportedCommand    = errors.New("unsupported command")
	ErrMalformedPayload      = errors.New("malformed payload")
	ErrNotFound              = errors.New("not found")
	ErrEmptyState            = errors.New("empty state")
	ErrDuplicateRegistration = errors.New("command already registered")
)
