// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ai-search-launcher/internal/fallback"
	"ai-search-launcher/internal/logger"

	"github.com/gorilla/mux"
)

// SearchResponse is returned by GET /api/search.
type SearchResponse struct {
	Query   string   `json:"query"`
	Results []string `json:"results"`
	Count   int      `json:"count"`
}

// InfoResponse is returned by GET /api/info.
type InfoResponse struct {
	Documents int    `json:"documents"`
	Method    string `json:"method"`
	Status    string `json:"status"`
}

// NewRouter registers the API routes and the embedded page.
func NewRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/search", searchHandler).Methods("GET")
	router.HandleFunc("/api/info", infoHandler).Methods("GET")

	// Registered after the API routes so it does not shadow them.
	router.PathPrefix("/").Handler(http.FileServer(PageFileSystem()))
	return router
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func searchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := fallback.Search(query)
	if results == nil {
		results = []string{}
	}
	writeJSON(w, SearchResponse{Query: query, Results: results, Count: len(results)})
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, InfoResponse{
		Documents: len(fallback.Corpus),
		Method:    fallback.Method,
		Status:    "Online",
	})
}

// Serve runs the fallback server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("Fallback server started", "addr", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("fallback server on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down fallback server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Fallback server stopped", "addr", addr)
	return nil
}
