// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import "strings"

// shellSafe lists the characters that never need quoting in a POSIX shell word.
const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_./:=@%+,"

// QuoteArgForShell quotes an argument so a printed command can be pasted into
// a POSIX shell. Plain words are returned unchanged; anything else is wrapped
// in single quotes with internal single quotes escaped.
func QuoteArgForShell(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.Trim(arg, shellSafe) == "" {
		return arg
	}
	return `'` + strings.ReplaceAll(arg, "'", `'\''`) + `'`
}

// JoinArgs renders name and args as a single shell command line.
func JoinArgs(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, QuoteArgForShell(name))
	for _, arg := range args {
		parts = append(parts, QuoteArgForShell(arg))
	}
	return strings.Join(parts, " ")
}
