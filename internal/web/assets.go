// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package web serves the keyword-search fallback page without Python: an
// embedded HTML page plus a small JSON API over the fallback corpus.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:assets
var embeddedFiles embed.FS

// PageFileSystem serves the keyword search page and its static files.
func PageFileSystem() http.FileSystem {
	page, err := fs.Sub(embeddedFiles, "assets")
	if err != nil {
		panic(err)
	}
	return http.FS(page)
}
