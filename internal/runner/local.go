// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/briandowns/spinner"
)

// interruptGrace is how long a foreground child gets to exit after being
// interrupted before it is killed.
const interruptGrace = 10 * time.Second

// LocalExecutor runs steps as local processes.
type LocalExecutor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Spinner shows a progress spinner on Stderr while a captured step runs.
	// Only enable it when Stderr is a terminal.
	Spinner bool
}

// NewLocalExecutor returns an executor wired to the process's standard streams.
func NewLocalExecutor(spinner bool) *LocalExecutor {
	return &LocalExecutor{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Spinner: spinner,
	}
}

func (l *LocalExecutor) command(ctx context.Context, step CommandStep) *exec.Cmd {
	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Dir = step.Dir
	// Let the child wind down like it would after Ctrl+C instead of SIGKILL.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = interruptGrace
	return cmd
}

// Capture implements Executor.
func (l *LocalExecutor) Capture(ctx context.Context, step CommandStep) Result {
	cmd := l.command(ctx, step)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if l.Spinner {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(l.Stderr))
		s.Color("cyan")
		s.Suffix = " " + step.Name + "..."
		s.Start()
		defer s.Stop()
	}

	start := time.Now()
	err := cmd.Run()
	res := toResult(ctx, step, err)
	res.Duration = time.Since(start)
	res.Stdout = stdoutBuf.String()
	res.Stderr = stderrBuf.String()
	return res
}

// Foreground implements Executor.
func (l *LocalExecutor) Foreground(ctx context.Context, step CommandStep) Result {
	cmd := l.command(ctx, step)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	start := time.Now()
	err := cmd.Run()
	res := toResult(ctx, step, err)
	res.Duration = time.Since(start)
	return res
}

// toResult classifies the error returned by cmd.Run.
func toResult(ctx context.Context, step CommandStep, err error) Result {
	res := Result{}
	if ctx.Err() != nil {
		res.Interrupted = true
	}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 when the child was killed by a signal.
		res.Code = exitErr.ExitCode()
		return res
	}
	if res.Interrupted {
		res.Code = -1
		return res
	}

	res.Code = -1
	res.Err = fmt.Errorf("failed to run %s: %w", step.Command, err)
	return res
}
