// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package prompt decides the launcher's consent points. Flows only see the
// Prompter interface; whether an answer comes from a flag, a plain line read
// or a terminal dialog is chosen once by Select.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ai-search-launcher/internal/config"
	"ai-search-launcher/internal/logger"
	"ai-search-launcher/internal/ui"
)

// Prompter answers the launcher's consent questions.
type Prompter interface {
	// Confirm reports whether the operator consents. Only "y" consents.
	Confirm(question string) bool
	// Acknowledge blocks until the operator has seen message.
	Acknowledge(message string)
}

// Auto gives the same answer to every question without reading input.
type Auto struct {
	Answer bool
	Out    io.Writer
}

func (a Auto) Confirm(question string) bool {
	if a.Out != nil {
		answer := "n"
		if a.Answer {
			answer = "y"
		}
		fmt.Fprintf(a.Out, "%s (y/n): %s (non-interactive)\n", question, answer)
	}
	logger.Info("Consent answered automatically", "question", question, "answer", a.Answer)
	return a.Answer
}

func (a Auto) Acknowledge(message string) {}

// Line reads answers one line at a time.
type Line struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewLine wraps in for line-based prompting.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{In: bufio.NewReader(in), Out: out}
}

func (l *Line) readLine() (string, error) {
	s, err := l.In.ReadString('\n')
	if err != nil && s == "" {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (l *Line) Confirm(question string) bool {
	fmt.Fprintf(l.Out, "%s (y/n): ", question)
	answer, err := l.readLine()
	if err != nil {
		fmt.Fprintln(l.Out)
		logger.Warn("No answer read, declining", "question", question, "error", err)
		return false
	}
	return strings.ToLower(answer) == "y"
}

func (l *Line) Acknowledge(message string) {
	fmt.Fprintf(l.Out, "\n%s", message)
	if _, err := l.readLine(); err != nil {
		fmt.Fprintln(l.Out)
	}
}

// TUI shows Bubble Tea dialogs. It falls back to Line if the dialog cannot run.
type TUI struct {
	In  io.Reader
	Out io.Writer
}

func (t TUI) Confirm(question string) bool {
	ok, err := ui.Confirm(t.In, t.Out, question)
	if err != nil {
		logger.Warn("Confirm dialog failed, falling back to line prompt", "error", err)
		return NewLine(t.In, t.Out).Confirm(question)
	}
	return ok
}

func (t TUI) Acknowledge(message string) {
	if err := ui.Acknowledge(t.In, t.Out, message); err != nil {
		logger.Warn("Acknowledge dialog failed, falling back to line prompt", "error", err)
		NewLine(t.In, t.Out).Acknowledge(message)
	}
}

// Mode is the consent policy requested on the command line.
type Mode int

const (
	// Ask prompts when stdin is a terminal and declines otherwise.
	Ask Mode = iota
	// AssumeYes consents to everything.
	AssumeYes
	// AssumeNo declines everything.
	AssumeNo
)

// Select picks the Prompter for mode. Without a terminal on stdin nobody can
// answer, so Ask declines rather than blocking.
func Select(mode Mode, style string, stdinIsTerminal bool, in io.Reader, out io.Writer) Prompter {
	switch mode {
	case AssumeYes:
		return Auto{Answer: true, Out: out}
	case AssumeNo:
		return Auto{Answer: false, Out: out}
	}
	if !stdinIsTerminal {
		logger.Info("stdin is not a terminal, declining all prompts")
		return Auto{Answer: false, Out: out}
	}
	if style == config.PromptStylePlain {
		return NewLine(in, out)
	}
	return TUI{In: in, Out: out}
}
