// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package web embeds the browser console served next to the command API.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:assets
var embeddedFiles embed.FS

// GetFileSystem returns an http.FileSystem rooted at the embedded assets.
func GetFileSystem() http.FileSystem {
	console, err := fs.Sub(embeddedFiles, "assets")
	if err != nil {
		panic(err)
	}
	return http.FS(console)
}
