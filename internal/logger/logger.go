// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package logger wraps log/slog with a JSON handler that writes to the
// launcher's state directory and, when verbose, to stderr as well.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var defaultLogger *slog.Logger

// LogFilePath returns the launcher log file location following the XDG state spec.
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "ai-search-launcher", "launcher.log"), nil
}

func openLogFile() (*os.File, error) {
	logFilePath, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	// 0750: user rwx, group rx, others ---
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", logFilePath, err)
	}
	return file, nil
}

// InitLogger configures the package logger. The file handle is left for the OS
// to close on exit.
func InitLogger(verbose bool) {
	var writers []io.Writer

	file, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v. File logging disabled.\n", err)
	} else {
		writers = append(writers, file)
	}

	level := slog.LevelInfo
	if verbose {
		writers = append(writers, os.Stderr)
		level = slog.LevelDebug
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	defaultLogger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetLogger replaces the package logger. Tests use it to capture records.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

func get() *slog.Logger {
	if defaultLogger == nil {
		// Nothing initialized yet (tests, early failures): stay quiet.
		defaultLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return defaultLogger
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}
