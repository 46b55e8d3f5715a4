// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package runner executes the external commands the launcher flows are built
// from. A CommandStep describes one invocation; an Executor runs it either with
// output captured (and printed afterwards) or attached to the terminal.
package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"ai-search-launcher/internal/console"
	"ai-search-launcher/internal/logger"
	"ai-search-launcher/internal/util"
)

// CommandStep is a command descriptor: an argument vector plus the
// description printed before it runs.
type CommandStep struct {
	Name    string
	Command string
	Args    []string
	Dir     string // empty means the executor's working directory
}

// Line renders the step as a pasteable shell command.
func (s CommandStep) Line() string {
	return util.JoinArgs(s.Command, s.Args...)
}

// Result is the outcome of one executed step.
type Result struct {
	Code        int
	Stdout      string
	Stderr      string
	Err         error // set when the process could not be started or waited for
	Interrupted bool  // the context was cancelled while the step ran
	Duration    time.Duration
}

// OK reports whether the step exited 0 on its own.
func (r Result) OK() bool {
	return r.Err == nil && r.Code == 0 && !r.Interrupted
}

// Executor runs command steps.
type Executor interface {
	// Capture runs the step with stdout and stderr collected into the Result.
	Capture(ctx context.Context, step CommandStep) Result
	// Foreground runs the step attached to the terminal and blocks until it exits.
	Foreground(ctx context.Context, step CommandStep) Result
}

// ExitError asks the CLI to terminate with Code after a flow has already
// reported the reason to the operator.
type ExitError struct {
	Code   int
	Reason string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", e.Reason, e.Code)
}

// Fatal returns an ExitError with code 1.
func Fatal(reason string) *ExitError {
	return &ExitError{Code: 1, Reason: reason}
}

func announce(out io.Writer, step CommandStep) {
	console.StepColor.Fprintf(out, "\n📋 %s\n", step.Name)
	fmt.Fprintf(out, "   Command: %s\n", step.Line())
	console.Rule(out)
}

func logResult(step CommandStep, res Result) {
	attrs := []any{"step", step.Name, "command", step.Line(), "code", res.Code, "duration", res.Duration.String()}
	switch {
	case res.Interrupted:
		logger.Info("Step interrupted", attrs...)
	case res.Err != nil:
		logger.Error("Step failed to run", append(attrs, "error", res.Err)...)
	case res.Code != 0:
		logger.Warn("Step exited non-zero", attrs...)
	default:
		logger.Info("Step completed", attrs...)
	}
}

// Run executes step with captured output, prints the captured text and
// reports success. It never panics or returns an error: a command that cannot
// be started is printed and counts as a failure.
func Run(ctx context.Context, exec Executor, out io.Writer, step CommandStep) bool {
	announce(out, step)

	res := exec.Capture(ctx, step)
	logResult(step, res)

	if res.Stdout != "" {
		fmt.Fprintln(out, strings.TrimRight(res.Stdout, "\n"))
	}
	if res.Stderr != "" {
		console.ErrorColor.Fprintf(out, "⚠️  Errors:\n%s\n", strings.TrimRight(res.Stderr, "\n"))
	}
	if res.Err != nil {
		console.ErrorColor.Fprintf(out, "❌ Error: %v\n", res.Err)
	}
	return res.OK()
}

// RunForeground executes step attached to the terminal. The full Result is
// returned so callers can tell an interrupt from a failure.
func RunForeground(ctx context.Context, exec Executor, out io.Writer, step CommandStep) Result {
	announce(out, step)

	res := exec.Foreground(ctx, step)
	logResult(step, res)
	return res
}

// FirstSuccess runs steps in order and stops at the first one that succeeds.
// It returns that step's index, or -1 when every step failed or the context
// was cancelled. Steps run in the foreground so installers show progress.
func FirstSuccess(ctx context.Context, exec Executor, out io.Writer, steps []CommandStep) (int, bool) {
	for i, step := range steps {
		if ctx.Err() != nil {
			return -1, false
		}
		res := RunForeground(ctx, exec, out, step)
		if res.OK() {
			return i, true
		}
		if res.Err != nil {
			console.ErrorColor.Fprintf(out, "❌ Error: %v\n", res.Err)
		}
		if res.Interrupted {
			return -1, false
		}
	}
	return -1, false
}
