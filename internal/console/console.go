// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package console holds the colored printers shared by the launcher flows.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	StatusColor     = color.New(color.FgCyan)
	ErrorColor      = color.New(color.FgRed)
	StepColor       = color.New(color.FgYellow)
	SuccessColor    = color.New(color.FgGreen)
	IdentifierColor = color.New(color.FgBlue)
	DimColor        = color.New(color.Faint)
	TitleColor      = color.New(color.FgMagenta, color.Bold)
)

// Section prints a boxed stage header.
func Section(w io.Writer, title string) {
	bar := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n", bar)
	TitleColor.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, bar)
}

// Banner prints a header without the leading blank line.
func Banner(w io.Writer, title string) {
	bar := strings.Repeat("=", 60)
	fmt.Fprintln(w, bar)
	TitleColor.Fprintln(w, title)
	fmt.Fprintln(w, bar)
}

// Rule prints the short separator placed under a command echo.
func Rule(w io.Writer) {
	DimColor.Fprintln(w, strings.Repeat("-", 40))
}
